package tsconfig

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// FileName is the conventional build configuration file name.
const FileName = "tsconfig.json"

// Defaults are the directory hints written into a synthesized compilerOptions.
type Defaults struct {
	RootDir string
	OutDir  string
}

// DefaultDefaults returns the conventional src/lib layout.
func DefaultDefaults() Defaults {
	return Defaults{RootDir: "src", OutDir: "lib"}
}

var formatOptions = &pretty.Options{Indent: "  "}

// Document is a parsed build configuration.
type Document struct {
	raw   []byte
	dirty bool
}

// Parse validates data and wraps it in a Document.
func Parse(data []byte) (*Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: top-level value is not an object", ErrMalformed)
	}
	if co := root.Get("compilerOptions"); co.Exists() && co.Type != gjson.Null && !co.IsObject() {
		return nil, fmt.Errorf("%w: compilerOptions is not an object", ErrMalformed)
	}
	refs := root.Get("references")
	if refs.Exists() && refs.Type != gjson.Null {
		if !refs.IsArray() {
			return nil, fmt.Errorf("%w: references is not an array", ErrMalformed)
		}
		for i, ref := range refs.Array() {
			if !ref.IsObject() || ref.Get("path").Type != gjson.String {
				return nil, fmt.Errorf("%w: references[%d] has no path", ErrMalformed, i)
			}
		}
	}
	return &Document{raw: bytes.Clone(data)}, nil
}

// Dirty reports whether an edit changed the document since Parse.
func (d *Document) Dirty() bool { return d.dirty }

// Bytes returns the current raw document.
func (d *Document) Bytes() []byte { return bytes.Clone(d.raw) }

// Composite reports whether compilerOptions.composite is true.
func (d *Document) Composite() bool {
	return gjson.GetBytes(d.raw, "compilerOptions.composite").Type == gjson.True
}

// EnsureComposite makes compilerOptions.composite true. A missing
// compilerOptions block is synthesized with the given directory hints.
func (d *Document) EnsureComposite(def Defaults) error {
	co := gjson.GetBytes(d.raw, "compilerOptions")
	if !co.Exists() || co.Type == gjson.Null {
		block, err := defaultCompilerOptions(def)
		if err != nil {
			return err
		}
		raw, err := sjson.SetRawBytes(d.raw, "compilerOptions", []byte(block))
		if err != nil {
			return fmt.Errorf("setting compilerOptions: %w", err)
		}
		d.raw, d.dirty = raw, true
		return nil
	}
	if co.Get("composite").Type == gjson.True {
		return nil
	}
	raw, err := sjson.SetBytes(d.raw, "compilerOptions.composite", true)
	if err != nil {
		return fmt.Errorf("setting compilerOptions.composite: %w", err)
	}
	d.raw, d.dirty = raw, true
	return nil
}

func defaultCompilerOptions(def Defaults) (string, error) {
	block, err := sjson.Set("{}", "composite", true)
	if err != nil {
		return "", err
	}
	if def.RootDir != "" {
		if block, err = sjson.Set(block, "rootDir", def.RootDir); err != nil {
			return "", err
		}
	}
	if def.OutDir != "" {
		if block, err = sjson.Set(block, "outDir", def.OutDir); err != nil {
			return "", err
		}
	}
	return block, nil
}

// References returns the reference paths in document order.
func (d *Document) References() []string {
	var out []string
	for _, ref := range gjson.GetBytes(d.raw, "references").Array() {
		out = append(out, ref.Get("path").String())
	}
	return out
}

// MergeReferences appends every path not yet referenced and drops entries that
// repeat an earlier path. Existing entries keep their position and any extra
// keys. It returns the paths that were appended.
func (d *Document) MergeReferences(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var (
		entries []string
		added   []string
		dropped bool
	)
	for _, ref := range gjson.GetBytes(d.raw, "references").Array() {
		p := ref.Get("path").String()
		if seen[p] {
			dropped = true
			continue
		}
		seen[p] = true
		entries = append(entries, ref.Raw)
	}
	for _, p := range paths {
		if seen[p] {
			continue
		}
		seen[p] = true
		entry, err := sjson.Set("{}", "path", p)
		if err != nil {
			return nil, fmt.Errorf("encoding reference %q: %w", p, err)
		}
		entries = append(entries, entry)
		added = append(added, p)
	}
	if !dropped && len(added) == 0 {
		return nil, nil
	}

	raw, err := sjson.SetRawBytes(d.raw, "references", []byte("["+strings.Join(entries, ",")+"]"))
	if err != nil {
		return nil, fmt.Errorf("setting references: %w", err)
	}
	d.raw, d.dirty = raw, true
	return added, nil
}

// Format pretty-prints the document with two-space indentation and a single
// trailing newline.
func (d *Document) Format() []byte {
	out := pretty.PrettyOptions(d.raw, formatOptions)
	out = bytes.TrimRight(out, "\n")
	return append(out, '\n')
}
