package include

import (
	"context"
	"path"
	"strings"

	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/launch/runtime/execution"
	"github.com/viant/launch/runtime/substitution"
)

// Source provides the description to include
type Source interface {
	Describe() string
	// Load returns the description and its location, empty for in-memory descriptions
	Load(ctx *execution.Context) (*execution.Description, string, error)
}

// Loader loads launch descriptions
type Loader interface {
	LoadDescription(ctx context.Context, URL string) (*execution.Description, error)
}

// FileSource loads a launch file
type FileSource struct {
	Location execution.Substitutions
	loader   Loader
}

func (s *FileSource) Describe() string {
	return substitution.Describe(s.Location)
}

func (s *FileSource) Load(ctx *execution.Context) (*execution.Description, string, error) {
	location, err := substitution.Perform(ctx, s.Location)
	if err != nil {
		return nil, "", &execution.ResolutionError{Action: "IncludeLaunchDescription(" + s.Describe() + ")", Err: err}
	}
	description, err := s.loader.LoadDescription(ctx, location)
	if err != nil {
		return nil, "", err
	}
	return description, location, nil
}

// NewFileSource creates file source
func NewFileSource(location execution.Substitutions, loader Loader) *FileSource {
	return &FileSource{Location: location, loader: loader}
}

// MemorySource provides an in-memory description
type MemorySource struct {
	description *execution.Description
	location    string
}

func (s *MemorySource) Describe() string {
	if s.location != "" {
		return s.location
	}
	return "memory"
}

func (s *MemorySource) Load(ctx *execution.Context) (*execution.Description, string, error) {
	return s.description, s.location, nil
}

// NewMemorySource creates in-memory source, location is optional
func NewMemorySource(description *execution.Description, location string) *MemorySource {
	return &MemorySource{description: description, location: location}
}

// Dir returns launch file directory, scheme is kept for non local locations
func Dir(location string) string {
	if !strings.Contains(location, "://") {
		return path.Dir(location)
	}
	baseURL, URLPath := url.Base(location, file.Scheme)
	parent := path.Dir(URLPath)
	if strings.HasPrefix(location, file.Scheme+"://") {
		return parent
	}
	return url.Join(baseURL, parent)
}
