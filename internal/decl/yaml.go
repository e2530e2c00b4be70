package decl

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"wither-generator/internal/match"
)

// File is the on-disk form of a declaration file.
//
//	declarations:
//	  - name: Person
//	    kind: struct
//	    visibility: public
//	    members:
//	      - bindings:
//	          - name: name
//	            type: string
//	      - accessor: getter
//	        bindings:
//	          - name: upperName
//	            type: string
type File struct {
	Declarations []Declaration `yaml:"declarations"`
}

// yamlDeclaration mirrors Declaration with YAML keys.
type yamlDeclaration struct {
	Name       string       `yaml:"name"`
	Kind       Kind         `yaml:"kind"`
	Visibility Visibility   `yaml:"visibility,omitempty"`
	TypeParams []string     `yaml:"type_params,omitempty"`
	Members    []yamlMember `yaml:"members"`
}

type yamlMember struct {
	Accessor   Accessor      `yaml:"accessor,omitempty"`
	Visibility Visibility    `yaml:"visibility,omitempty"`
	Bindings   []yamlBinding `yaml:"bindings"`
}

type yamlBinding struct {
	Name       string     `yaml:"name"`
	Type       string     `yaml:"type,omitempty"`
	Accessor   Accessor   `yaml:"accessor,omitempty"`
	Visibility Visibility `yaml:"visibility,omitempty"`
	Source     string     `yaml:"source,omitempty"`
}

// LoadFile reads and parses a declaration file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read declaration file %s: %w", path, err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return f, nil
}

// Parse parses YAML data into a File. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var raw struct {
		Declarations []yamlDeclaration `yaml:"declarations"`
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse declaration YAML: %w", err)
	}

	f := &File{}
	for i, yd := range raw.Declarations {
		if strings.TrimSpace(yd.Name) == "" {
			return nil, fmt.Errorf("declaration #%d: missing name", i+1)
		}

		d := Declaration{
			Name:       yd.Name,
			Kind:       yd.Kind,
			Visibility: yd.Visibility,
			TypeParams: yd.TypeParams,
		}

		for _, ym := range yd.Members {
			m := Member{Accessor: ym.Accessor, Visibility: ym.Visibility}
			for _, yb := range ym.Bindings {
				if yb.Name == "" {
					return nil, fmt.Errorf("declaration %s: binding without name", yd.Name)
				}

				m.Bindings = append(m.Bindings, Binding(yb))
			}

			d.Members = append(d.Members, m)
		}

		f.Declarations = append(f.Declarations, d)
	}

	return f, nil
}

// Keywords accepted by the parse functions, used for suggestions.
var (
	kindWords       = []string{"struct", "interface", "named", "alias"}
	accessorWords   = []string{"none", "getter", "getset", "observer"}
	visibilityWords = []string{"private", "internal", "public"}
)

// ParseKind converts a kind keyword into a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "struct":
		return KindStruct, nil
	case "interface":
		return KindInterface, nil
	case "named":
		return KindNamed, nil
	case "alias":
		return KindAlias, nil
	default:
		return KindUnknown, fmt.Errorf("unknown declaration kind %q%s", s, match.DidYouMean(s, kindWords))
	}
}

// ParseAccessor converts an accessor keyword into an Accessor.
func ParseAccessor(s string) (Accessor, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return AccessorNone, nil
	case "getter", "get":
		return AccessorGetter, nil
	case "getset":
		return AccessorGetSet, nil
	case "observer":
		return AccessorObserver, nil
	default:
		return AccessorNone, fmt.Errorf("unknown accessor %q%s", s, match.DidYouMean(s, accessorWords))
	}
}

// ParseVisibility converts a visibility keyword into a Visibility.
func ParseVisibility(s string) (Visibility, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return VisibilityUnset, nil
	case "private":
		return VisibilityPrivate, nil
	case "internal":
		return VisibilityInternal, nil
	case "public":
		return VisibilityPublic, nil
	default:
		return VisibilityUnset, fmt.Errorf("unknown visibility %q%s", s, match.DidYouMean(s, visibilityWords))
	}
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (k *Kind) UnmarshalYAML(node *yaml.Node) error {
	v, err := ParseKind(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}

	*k = v
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (k Kind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *Accessor) UnmarshalYAML(node *yaml.Node) error {
	v, err := ParseAccessor(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}

	*a = v
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (a Accessor) MarshalYAML() (any, error) {
	return a.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Visibility) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseVisibility(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}

	*v = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (v Visibility) MarshalYAML() (any, error) {
	return v.String(), nil
}
