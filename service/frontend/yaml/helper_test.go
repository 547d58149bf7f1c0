package yaml

import (
	"io"
	"strings"
)

func stringReader(text string) io.Reader {
	return strings.NewReader(text)
}
