package check

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// RuleFactory builds a validator from the arguments of a schema rule.
type RuleFactory func(args map[string]any) (ValidatorFunc, error)

// SchemaOption configures LoadSchema.
type SchemaOption func(*schemaConfig)

type schemaConfig struct {
	rules      map[string]RuleFactory
	sanitizers map[string]SanitizerFunc
	lookups    map[string]Lookup
	chainOpts  []ChainOption
}

// WithRule makes a custom validator available to schema rules under name.
func WithRule(name string, f RuleFactory) SchemaOption {
	return func(c *schemaConfig) {
		if name != "" && f != nil {
			c.rules[name] = f
		}
	}
}

// WithSanitizer makes a custom sanitizer available to schema sanitizers under name.
func WithSanitizer(name string, fn SanitizerFunc) SchemaOption {
	return func(c *schemaConfig) {
		if name != "" && fn != nil {
			c.sanitizers[name] = fn
		}
	}
}

// WithLookup registers a Lookup for the existsIn and notExistsIn rules.
func WithLookup(name string, l Lookup) SchemaOption {
	return func(c *schemaConfig) {
		if name != "" && l != nil {
			c.lookups[name] = l
		}
	}
}

// WithChainOptions applies opts to every chain the schema produces.
func WithChainOptions(opts ...ChainOption) SchemaOption {
	return func(c *schemaConfig) {
		c.chainOpts = append(c.chainOpts, opts...)
	}
}

type fieldSchema struct {
	In         []Location     `yaml:"in"`
	Optional   optionalSchema `yaml:"optional"`
	Message    string         `yaml:"message"`
	Sanitizers []opSchema     `yaml:"sanitizers"`
	Rules      []opSchema     `yaml:"rules"`
}

// opSchema is one sanitizer or rule: either a bare name or a mapping with
// arguments.
type opSchema struct {
	Name    string         `yaml:"name"`
	Message string         `yaml:"message"`
	Not     bool           `yaml:"not"`
	Min     *float64       `yaml:"min"`
	Max     *float64       `yaml:"max"`
	Values  []string       `yaml:"values"`
	Pattern string         `yaml:"pattern"`
	Value   string         `yaml:"value"`
	Chars   string         `yaml:"chars"`
	Strict  bool           `yaml:"strict"`
	Lookup  string         `yaml:"lookup"`
	Scope   string         `yaml:"scope"`
	Args    map[string]any `yaml:"args"`
}

func (o *opSchema) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		return n.Decode(&o.Name)
	}
	type plain opSchema
	return n.Decode((*plain)(o))
}

// optionalSchema accepts true, false, "nil" or "falsy".
type optionalSchema OptionalMode

func (o *optionalSchema) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: optional must be a scalar", ErrInvalidSchema)
	}
	s := n.Value
	switch strings.ToLower(s) {
	case "", "false":
		*o = optionalSchema(OptionalNone)
	case "true", "nil", "null":
		*o = optionalSchema(OptionalNil)
	case "falsy":
		*o = optionalSchema(OptionalFalsy)
	default:
		return fmt.Errorf("%w: optional must be true, false, nil or falsy, got %q", ErrInvalidSchema, s)
	}
	return nil
}

// LoadSchema builds one chain per field of a YAML document, in document order:
//
//	email:
//	  in: [body]
//	  sanitizers: [trim, normalizeEmail]
//	  rules:
//	    - isEmail
//	    - name: notExistsIn
//	      lookup: users
//	      scope: users.email
//	      message: Email already registered
//	age:
//	  in: [query]
//	  optional: true
//	  sanitizers: [toInt]
//	  rules:
//	    - name: isInt
//	      min: 18
//
// A field without "in" is searched in every location.
func LoadSchema(r io.Reader, opts ...SchemaOption) (Chains, error) {
	cfg := &schemaConfig{
		rules:      make(map[string]RuleFactory),
		sanitizers: make(map[string]SanitizerFunc),
		lookups:    make(map[string]Lookup),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Chains{}, nil
		}
		return nil, errors.Join(ErrInvalidSchema, err)
	}
	if len(doc.Content) == 0 {
		return Chains{}, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must be a mapping of fields", ErrInvalidSchema)
	}

	chains := make(Chains, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		field := root.Content[i].Value
		var fs fieldSchema
		if err := root.Content[i+1].Decode(&fs); err != nil {
			return nil, fmt.Errorf("%w: field %q: %w", ErrInvalidSchema, field, err)
		}
		chain, err := cfg.build(field, fs)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q: %w", ErrInvalidSchema, field, err)
		}
		chains = append(chains, chain)
	}
	return chains, nil
}

func (cfg *schemaConfig) build(field string, fs fieldSchema) (*Chain, error) {
	locations := fs.In
	if len(locations) == 0 {
		locations = AllLocations
	}
	for _, loc := range locations {
		if !loc.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLocation, loc)
		}
	}

	c := New([]string{field}, locations, fs.Message, cfg.chainOpts...)
	if mode := OptionalMode(fs.Optional); mode != OptionalNone {
		c.Optional(mode)
	}
	for _, op := range fs.Sanitizers {
		if err := cfg.addSanitizer(c, op); err != nil {
			return nil, err
		}
	}
	for _, op := range fs.Rules {
		if op.Not {
			c.Not()
		}
		if err := cfg.addRule(c, op); err != nil {
			return nil, err
		}
		if op.Message != "" {
			c.WithMessage(op.Message)
		}
	}
	return c, nil
}

func (cfg *schemaConfig) addSanitizer(c *Chain, op opSchema) error {
	switch op.Name {
	case "trim":
		if op.Chars != "" {
			c.Trim(op.Chars)
		} else {
			c.Trim()
		}
	case "toLowerCase", "toLower":
		c.ToLower()
	case "toUpperCase", "toUpper":
		c.ToUpper()
	case "escape":
		c.Escape()
	case "stripTags":
		c.StripTags()
	case "normalizeEmail":
		c.NormalizeEmail()
	case "normalizeUnicode":
		c.NormalizeUnicode()
	case "toInt":
		c.ToInt()
	case "toFloat":
		c.ToFloat()
	case "toBoolean":
		c.ToBoolean(op.Strict)
	default:
		fn, ok := cfg.sanitizers[op.Name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownSanitizer, op.Name)
		}
		c.Customize(op.Name, fn)
	}
	return nil
}

func (cfg *schemaConfig) addRule(c *Chain, op opSchema) error {
	switch op.Name {
	case "exists":
		c.Exists()
	case "notEmpty":
		c.NotEmpty()
	case "isEmail":
		c.IsEmail()
	case "isUUID":
		c.IsUUID()
	case "isURL":
		c.IsURL()
	case "isBoolean":
		c.IsBoolean()
	case "isInt":
		var b IntBounds
		if op.Min != nil {
			v := int64(*op.Min)
			b.Min = &v
		}
		if op.Max != nil {
			v := int64(*op.Max)
			b.Max = &v
		}
		c.IsInt(b)
	case "isFloat":
		c.IsFloat(FloatBounds{Min: op.Min, Max: op.Max})
	case "isLength":
		lo, hi := 0, -1
		if op.Min != nil {
			lo = int(*op.Min)
		}
		if op.Max != nil {
			hi = int(*op.Max)
		}
		c.IsLength(lo, hi)
	case "matches":
		if op.Pattern == "" {
			return fmt.Errorf("rule %q needs a pattern", op.Name)
		}
		c.Matches(op.Pattern)
	case "isIn":
		c.IsIn(op.Values...)
	case "equals":
		c.Equals(op.Value)
	case "existsIn", "notExistsIn":
		l, ok := cfg.lookups[op.Lookup]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownLookup, op.Lookup)
		}
		if op.Name == "existsIn" {
			c.ExistsIn(l, op.Scope)
		} else {
			c.NotExistsIn(l, op.Scope)
		}
	default:
		factory, ok := cfg.rules[op.Name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownRule, op.Name)
		}
		fn, err := factory(op.Args)
		if err != nil {
			return fmt.Errorf("rule %q: %w", op.Name, err)
		}
		c.Custom(op.Name, fn)
	}
	return nil
}
