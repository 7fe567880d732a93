// Package report renders a validator Report in the three formats the
// CLI exposes: a human-readable multi-line form, an indented JSON
// document, and the same document with whitespace stripped.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ktx2tools/ktx2go/pkg/issue"
)

// Format selects one of the three renderings.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMiniJSON Format = "mini-json"
)

// Write renders report to w in format, returning an error for an
// unrecognized format.
func Write(w io.Writer, rep *issue.Report, format Format) error {
	switch format {
	case FormatText, "":
		return writeText(w, rep)
	case FormatJSON:
		return writeJSON(w, rep, true)
	case FormatMiniJSON:
		return writeJSON(w, rep, false)
	default:
		return fmt.Errorf("report: unrecognized format %q", format)
	}
}

// writeText matches the original tool's "type-####: message" plus
// detail-line layout: one issue occupies exactly two lines.
func writeText(w io.Writer, rep *issue.Report) error {
	if len(rep.Issues) == 0 {
		_, err := fmt.Fprintln(w, "No issues found.")
		return err
	}
	var b strings.Builder
	for _, iss := range rep.Issues {
		fmt.Fprintf(&b, "%s-%04d: %s\n", iss.Severity, iss.Code, iss.Message)
		fmt.Fprintf(&b, "    %s\n", iss.Detail)
	}
	warnings, errs, fatals := rep.Counts()
	fmt.Fprintf(&b, "\n%d warning(s), %d error(s), %d fatal(s)\n", warnings, errs, fatals)
	_, err := io.WriteString(w, b.String())
	return err
}

type jsonMessage struct {
	ID      int    `json:"id"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details"`
}

type jsonDocument struct {
	Schema   string        `json:"$schema"`
	Valid    bool          `json:"valid"`
	Messages []jsonMessage `json:"messages"`
}

const schemaURI = "https://ktx2tools.invalid/schemas/ktx2-validation.schema.json"

func toJSONDocument(rep *issue.Report) jsonDocument {
	doc := jsonDocument{
		Schema:   schemaURI,
		Valid:    rep.Valid(),
		Messages: make([]jsonMessage, len(rep.Issues)),
	}
	for i, iss := range rep.Issues {
		doc.Messages[i] = jsonMessage{
			ID:      iss.Code,
			Type:    iss.Severity.String(),
			Message: iss.Message,
			Details: iss.Detail,
		}
	}
	return doc
}

func writeJSON(w io.Writer, rep *issue.Report, indent bool) error {
	doc := toJSONDocument(rep)
	if !indent {
		enc := json.NewEncoder(w)
		return enc.Encode(doc)
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}
