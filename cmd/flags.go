/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/ifcdb/pkg/errcode"
	"gopkg.in/yaml.v3"
)

// outFormat is the format of command output.
type outFormat string

const (
	formatText outFormat = "text"
	formatJSON outFormat = "json"
	formatYAML outFormat = "yaml"
)

var formats = []outFormat{formatText, formatJSON, formatYAML}

func parseFormat(s string) (outFormat, error) {
	f := outFormat(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(formats, f) {
		return f, nil
	}
	return "", &gn.Error{
		Code: errcode.UnknownError,
		Msg:  "Unknown output format <em>%s</em>, use text, json or yaml",
		Vars: []any{s},
		Err:  fmt.Errorf("unknown format %q", s),
	}
}

// encode renders v as JSON or YAML.
func encode(f outFormat, v any) ([]byte, error) {
	switch f {
	case formatJSON:
		enc := gnfmt.GNjson{Pretty: true}
		return enc.Encode(v)
	case formatYAML:
		return yaml.Marshal(v)
	default:
		return nil, errors.New("text output is not encoded")
	}
}
