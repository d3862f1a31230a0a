package message

import (
	"fmt"
	"strings"
)

type FieldType int

const (
	TypeComplex FieldType = iota
	TypeString
	TypeDateTime
)

// ElementDecl declares one element: its name, its content type and, for
// complex elements, the exact sequence of children (each occurring once).
type ElementDecl struct {
	Name     string
	Type     FieldType
	Sequence []ElementDecl
}

var MessageSchema = ElementDecl{
	Name: "Message",
	Type: TypeComplex,
	Sequence: []ElementDecl{
		{
			Name: "Header",
			Type: TypeComplex,
			Sequence: []ElementDecl{
				{Name: FieldTo, Type: TypeString},
				{Name: FieldFrom, Type: TypeString},
				{Name: FieldTimestamp, Type: TypeDateTime},
				{Name: FieldTitle, Type: TypeString},
				{Name: FieldBody, Type: TypeString},
			},
		},
	},
}

// Decode parses raw and validates it against MessageSchema.
func Decode(raw []byte) (Record, error) {
	root, err := Parse(raw)
	if err != nil {
		return Record{}, err
	}
	return Validate(root)
}

// Validate checks root against MessageSchema and extracts the record.
func Validate(root *Node) (Record, error) {
	if err := validateElement(root, MessageSchema, ""); err != nil {
		return Record{}, err
	}

	header := root.Children[0]
	fields := make(map[string]string, len(header.Children))
	for _, child := range header.Children {
		fields[child.Name.Local] = child.Text
	}

	return Record{
		To:        fields[FieldTo],
		From:      fields[FieldFrom],
		Timestamp: fields[FieldTimestamp],
		Title:     fields[FieldTitle],
		Body:      fields[FieldBody],
	}, nil
}

func validateElement(node *Node, decl ElementDecl, parentPath string) error {
	path := parentPath + "/" + decl.Name

	if node.Name.Space != "" || node.Name.Local != decl.Name {
		return schemaErrorf(parentPath, "expected element %s, got %s", decl.Name, qualifiedName(node))
	}

	for _, attr := range node.Attrs {
		if isNamespaceDecl(attr.Name.Space, attr.Name.Local) || attr.Name.Space == xsiNamespace {
			continue
		}
		return schemaErrorf(path, "unexpected attribute %s", attr.Name.Local)
	}

	switch decl.Type {
	case TypeComplex:
		if strings.TrimSpace(node.Text) != "" {
			return schemaErrorf(path, "unexpected text content")
		}
		if len(node.Children) != len(decl.Sequence) {
			return schemaErrorf(path, "expected %d child elements, got %d", len(decl.Sequence), len(node.Children))
		}
		for i, child := range node.Children {
			if err := validateElement(child, decl.Sequence[i], path); err != nil {
				return err
			}
		}
	case TypeString:
		if len(node.Children) > 0 {
			return schemaErrorf(path, "element must not contain child elements")
		}
	case TypeDateTime:
		if len(node.Children) > 0 {
			return schemaErrorf(path, "element must not contain child elements")
		}
		if _, err := ParseTimestamp(node.Text); err != nil {
			return schemaErrorf(path, "%v", err)
		}
	}

	return nil
}

// Instance attributes such as xsi:noNamespaceSchemaLocation are allowed on
// any element.
const xsiNamespace = "http://www.w3.org/2001/XMLSchema-instance"

func isNamespaceDecl(space, local string) bool {
	return space == "xmlns" || (space == "" && local == "xmlns")
}

func qualifiedName(node *Node) string {
	if node.Name.Space == "" {
		return node.Name.Local
	}
	return "{" + node.Name.Space + "}" + node.Name.Local
}

func schemaErrorf(path, format string, args ...interface{}) error {
	if path == "" {
		path = "/"
	}
	return fmt.Errorf("%w: %s: %s", ErrSchema, path, fmt.Sprintf(format, args...))
}
