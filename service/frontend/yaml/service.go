package yaml

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/launch/internal/yml"
	"github.com/viant/launch/runtime/execution"
	"github.com/viant/launch/runtime/substitution"
	"github.com/viant/launch/service/frontend"
	"github.com/viant/structology/conv"
)

// RootKey is the launch file root attribute
const RootKey = "launch"

// Service parses YAML launch files
type Service struct {
	registry  *frontend.Registry
	fs        afs.Service
	fsOptions []storage.Option
	converter *conv.Converter
}

// ParseAction parses an entity with the parse function registered for its tag
func (s *Service) ParseAction(entity frontend.Entity) (execution.Action, error) {
	fn, err := s.registry.Lookup(entity.TypeName())
	if err != nil {
		return nil, s.locate(entity, err)
	}
	ret, err := fn(entity, s)
	if err != nil {
		return nil, s.locate(entity, err)
	}
	return ret, nil
}

func (s *Service) ParseActions(entities []frontend.Entity) ([]execution.Entity, error) {
	var ret = make([]execution.Entity, 0, len(entities))
	for _, entity := range entities {
		action, err := s.ParseAction(entity)
		if err != nil {
			return nil, err
		}
		ret = append(ret, action)
	}
	return ret, nil
}

func (s *Service) ParseSubstitution(text string) (execution.Substitutions, error) {
	return substitution.Parse(text)
}

// DecodeYAML decodes launch description
func (s *Service) DecodeYAML(data []byte) (*execution.Description, error) {
	document, err := yml.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse launch file: %w", err)
	}
	root := document.Lookup(RootKey)
	if root == nil {
		return nil, fmt.Errorf("launch file has no '%s' section", RootKey)
	}
	if root.IsNull() {
		return execution.NewDescription(), nil
	}
	var entities []frontend.Entity
	err = root.Items(func(index int, item *yml.Node) error {
		entities = append(entities, newEntity(RootKey, item, s.converter))
		return nil
	})
	if err != nil {
		return nil, err
	}
	actions, err := s.ParseActions(entities)
	if err != nil {
		return nil, err
	}
	return execution.NewDescription(actions...), nil
}

// LoadDescription loads launch description from URL
func (s *Service) LoadDescription(ctx context.Context, URL string) (*execution.Description, error) {
	data, err := s.fs.DownloadWithURL(ctx, URL, s.fsOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to load launch file %v: %w", URL, err)
	}
	ret, err := s.DecodeYAML(data)
	if err != nil {
		return nil, fmt.Errorf("invalid launch file %v: %w", URL, err)
	}
	return ret, nil
}

func (s *Service) locate(entity frontend.Entity, err error) error {
	if located, ok := entity.(*Entity); ok && located.Line() > 0 {
		return fmt.Errorf("line %d: %w", located.Line(), err)
	}
	return err
}

// Option represents service option
type Option func(s *Service)

// WithFs sets file system service
func WithFs(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithFsOptions sets file system options, for example an embed.FS
func WithFsOptions(options ...storage.Option) Option {
	return func(s *Service) {
		s.fsOptions = options
	}
}

// New creates YAML frontend
func New(registry *frontend.Registry, options ...Option) *Service {
	convOptions := conv.DefaultOptions()
	convOptions.IgnoreUnmapped = true
	ret := &Service{registry: registry, converter: conv.NewConverter(convOptions)}
	for _, opt := range options {
		opt(ret)
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	return ret
}

var _ frontend.Parser = (*Service)(nil)
