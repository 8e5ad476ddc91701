package widget

import (
	"fmt"
	"io"
)

func placeholder(w io.Writer) error {
	_, err := io.WriteString(w, Placeholder+"\n")
	return err
}

func badAttribute(key, value string) error {
	return fmt.Errorf("%w: data-%s=%q", ErrBadAttribute, key, value)
}

func unexpected(kind string, v any) error {
	return fmt.Errorf("%w: %s got %T", ErrUnexpectedData, kind, v)
}
