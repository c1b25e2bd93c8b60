package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

const (
	// ContentKey is the only member of a serialized document.
	ContentKey = "content"

	// ModuleVariable is the variable exported by the viewer data module.
	ModuleVariable = "fileSystemData"

	indentUnit = "  "

	// MaxDepth bounds the nesting of directories accepted by Deserialize.
	MaxDepth = 10000
)

var modulePrefix = regexp.MustCompile(`^export\s+const\s+` + ModuleVariable + `\s*=\s*`)

// Serialize encodes the tree rooted at root into its persisted JSON text.
//
// A directory is encoded as an object whose members are its entries in display order, and a document
// as an object with the single string member "content". The output is deterministic and indented with
// two spaces, and HTML characters in content are kept as is.
func Serialize(root *Node) (string, error) {
	if root == nil || !root.IsDirectory() {
		return "", errors.WithMessage(ErrWrongKind, "root must be a directory")
	}

	var buf bytes.Buffer
	if err := writeNode(&buf, root, 0); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// writeNode writes node as a JSON object at the given indentation depth.
func writeNode(buf *bytes.Buffer, node *Node, depth int) error {
	switch node.Kind {
	case KindDocument:
		buf.WriteString("{\n")
		writeIndent(buf, depth+1)
		writeString(buf, ContentKey)
		buf.WriteString(": ")
		writeString(buf, node.Content)
		buf.WriteString("\n")
		writeIndent(buf, depth)
		buf.WriteString("}")
		return nil
	case KindDirectory:
	default:
		return errors.WithMessagef(ErrWrongKind, "unknown kind %q", node.Kind)
	}

	if len(node.Entries) == 0 {
		buf.WriteString("{}")
		return nil
	}

	buf.WriteString("{\n")
	seen := make(map[string]struct{}, len(node.Entries))
	for i, entry := range node.Entries {
		if err := ValidateName(entry.Name); err != nil {
			return err
		}
		if _, ok := seen[entry.Name]; ok {
			return errors.WithMessagef(ErrNameConflict, "%q", entry.Name)
		}
		seen[entry.Name] = struct{}{}

		writeIndent(buf, depth+1)
		writeString(buf, entry.Name)
		buf.WriteString(": ")
		if err := writeNode(buf, entry, depth+1); err != nil {
			return err
		}
		if i < len(node.Entries)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}
	writeIndent(buf, depth)
	buf.WriteString("}")

	return nil
}

func writeIndent(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString(indentUnit)
	}
}

// writeString writes s as a JSON string without HTML escaping.
func writeString(buf *bytes.Buffer, s string) {
	encoder := json.NewEncoder(buf)
	encoder.SetEscapeHTML(false)
	// encoding a string never fails
	encoder.Encode(s)
	// drop the newline appended by Encode
	buf.Truncate(buf.Len() - 1)
}

// WrapModule frames serialized JSON as the viewer data module.
func WrapModule(text string) string {
	return fmt.Sprintf("export const %s = %s;", ModuleVariable, text)
}

// UnwrapModule strips the viewer data module framing, if any.
func UnwrapModule(text string) string {
	trimmed := strings.TrimSpace(text)

	loc := modulePrefix.FindStringIndex(trimmed)
	if loc == nil {
		return trimmed
	}

	body := strings.TrimSpace(trimmed[loc[1]:])
	return strings.TrimSpace(strings.TrimSuffix(body, ";"))
}

// Deserialize decodes persisted text, either bare JSON or the viewer data module, into a tree.
// Any structurally invalid input is reported as a *ParseError.
func Deserialize(text string) (*Node, error) {
	body := UnwrapModule(text)
	d := &decoder{
		body: body,
		dec:  json.NewDecoder(strings.NewReader(body)),
	}

	if err := d.expectObject(); err != nil {
		return nil, err
	}

	root, err := d.decodeObject(RootName)
	if err != nil {
		return nil, err
	}

	if !root.IsDirectory() {
		return nil, d.errorf("root must be a directory")
	}

	if _, err := d.dec.Token(); err != io.EOF {
		return nil, d.errorf("unexpected data after the root object")
	}

	return root, nil
}

// decoder streams JSON tokens so that member order is preserved.
type decoder struct {
	body  string
	dec   *json.Decoder
	names []string // names of the objects being decoded, below the root
}

// path renders the path of the object being decoded.
func (d *decoder) path() string {
	return PathSeparator + strings.Join(d.names, PathSeparator)
}

func (d *decoder) errorf(format string, args ...interface{}) *ParseError {
	offset := d.dec.InputOffset()
	return &ParseError{
		Line:    strings.Count(d.body[:offset], "\n") + 1,
		Offset:  offset,
		Message: fmt.Sprintf(format, args...),
	}
}

func (d *decoder) token() (json.Token, error) {
	tok, err := d.dec.Token()
	if err == io.EOF {
		return nil, d.errorf("unexpected end of input")
	}
	if err != nil {
		return nil, d.errorf("%v", err)
	}
	return tok, nil
}

func (d *decoder) expectObject() error {
	tok, err := d.token()
	if err != nil {
		return err
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return d.errorf("expected object, got %v", tok)
	}

	return nil
}

// decodeObject decodes the members of an object whose opening brace was consumed, and classifies it:
// an object with a string "content" member is a document, anything else is a directory.
func (d *decoder) decodeObject(name string) (*Node, error) {
	var (
		content    *string
		entries    = []*Node{}
		seen       = make(map[string]struct{})
		numMembers int
	)

	for d.dec.More() {
		tok, err := d.token()
		if err != nil {
			return nil, err
		}

		key, ok := tok.(string)
		if !ok {
			return nil, d.errorf("expected member name in %s, got %v", d.path(), tok)
		}

		if _, dup := seen[key]; dup {
			return nil, d.errorf("duplicate name %q in %s", key, d.path())
		}
		seen[key] = struct{}{}
		numMembers++

		tok, err = d.token()
		if err != nil {
			return nil, err
		}

		switch v := tok.(type) {
		case string:
			if key != ContentKey {
				return nil, d.errorf("unexpected string member %q in %s", key, d.path())
			}
			content = &v
		case json.Delim:
			if v != '{' {
				return nil, d.errorf("unexpected %v for %q in %s", v, key, d.path())
			}
			if err := ValidateName(key); err != nil {
				return nil, d.errorf("invalid name %q in %s", key, d.path())
			}
			if len(d.names) >= MaxDepth {
				return nil, d.errorf("nesting exceeds %d levels", MaxDepth)
			}

			d.names = append(d.names, key)
			entry, err := d.decodeObject(key)
			if err != nil {
				return nil, err
			}
			d.names = d.names[:len(d.names)-1]

			entries = append(entries, entry)
		default:
			return nil, d.errorf("unexpected value %v for %q in %s", tok, key, d.path())
		}
	}

	// closing brace
	if _, err := d.token(); err != nil {
		return nil, err
	}

	if content == nil {
		return NewDirectory(name, entries...), nil
	}

	if numMembers > 1 {
		return nil, d.errorf("document %s must only have the %q member", d.path(), ContentKey)
	}

	return NewDocument(name, *content), nil
}

// Revision fingerprints the serialized form of a tree.
func Revision(root *Node) (common.Hash, error) {
	text, err := Serialize(root)
	if err != nil {
		return common.Hash{}, err
	}

	return RevisionOf(text), nil
}

// RevisionOf fingerprints serialized text.
func RevisionOf(text string) common.Hash {
	return crypto.Keccak256Hash([]byte(text))
}
