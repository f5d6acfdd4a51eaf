package user

import "io"

// ImagePayload carries an uploaded avatar from the handler to the service
type ImagePayload struct {
	Reader io.Reader
}
