// Package render turns session variables into a note or a machine readable dump.
package render

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/josegonzalez/gamenote/pkg/session"
)

// DefaultTemplate is the note layout used when no template is configured.
//
//go:embed templates/game.md
var DefaultTemplate string

// Variables returns the flat name to string map handed to note templates.
func Variables(vars *session.Variables) map[string]string {
	return vars.Strings()
}

// Note renders vars with tmpl, or with DefaultTemplate when tmpl is empty.
// Besides the string fields, templates can reach the provider object as .original.
func Note(vars *session.Variables, tmpl string) (string, error) {
	if tmpl == "" {
		tmpl = DefaultTemplate
	}

	t, err := template.New("note").Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	data := make(map[string]any, len(vars.Fields())+1)
	for k, v := range Variables(vars) {
		data[k] = v
	}
	data["original"] = vars.Original.Raw

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

// YAML dumps vars as an ordered mapping followed by the original object.
func YAML(vars *session.Variables) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	add := func(name string, value any) error {
		var node yaml.Node
		if err := node.Encode(value); err != nil {
			return fmt.Errorf("encode %s: %w", name, err)
		}
		root.Content = append(root.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: name}, &node)
		return nil
	}

	for _, f := range vars.Fields() {
		if err := add(f.Name, f.Value); err != nil {
			return nil, err
		}
	}
	if err := add("original", vars.Original.Raw); err != nil {
		return nil, err
	}
	return yaml.Marshal(root)
}

// JSON dumps vars as an ordered, indented object followed by the original object.
func JSON(vars *session.Variables) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range vars.Fields() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, f.Name, f.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte(',')
	if err := writeMember(&buf, "original", vars.Original.Raw); err != nil {
		return nil, err
	}
	buf.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func writeMember(buf *bytes.Buffer, name string, value any) error {
	key, err := json.Marshal(name)
	if err != nil {
		return err
	}
	val, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	buf.Write(key)
	buf.WriteByte(':')
	buf.Write(val)
	return nil
}
