package execution

// Configurations represents an insertion ordered name to value mapping
type Configurations struct {
	keys   []string
	values map[string]string
}

// Get returns a value
func (c *Configurations) Get(name string) (string, bool) {
	value, ok := c.values[name]
	return value, ok
}

// Set sets a value, new names are appended
func (c *Configurations) Set(name, value string) {
	if _, ok := c.values[name]; !ok {
		c.keys = append(c.keys, name)
	}
	c.values[name] = value
}

// Delete removes a value
func (c *Configurations) Delete(name string) {
	if _, ok := c.values[name]; !ok {
		return
	}
	delete(c.values, name)
	for i, key := range c.keys {
		if key == name {
			c.keys = append(c.keys[:i:i], c.keys[i+1:]...)
			break
		}
	}
}

// Keys returns names in insertion order
func (c *Configurations) Keys() []string {
	return append([]string(nil), c.keys...)
}

// Len returns number of entries
func (c *Configurations) Len() int {
	return len(c.keys)
}

// Map returns a copy of the values
func (c *Configurations) Map() map[string]string {
	ret := make(map[string]string, len(c.values))
	for k, v := range c.values {
		ret[k] = v
	}
	return ret
}

// Clone returns a deep copy
func (c *Configurations) Clone() *Configurations {
	return &Configurations{keys: c.Keys(), values: c.Map()}
}

// NewConfigurations creates configurations
func NewConfigurations() *Configurations {
	return &Configurations{values: map[string]string{}}
}

// frame represents a configuration scope
type frame struct {
	configurations *Configurations
	locals         map[string]interface{}
	handlers       []EventHandler
}

func (f *frame) clone() *frame {
	locals := make(map[string]interface{}, len(f.locals))
	for k, v := range f.locals {
		locals[k] = v
	}
	return &frame{configurations: f.configurations.Clone(), locals: locals}
}

func newFrame() *frame {
	return &frame{configurations: NewConfigurations(), locals: map[string]interface{}{}}
}
