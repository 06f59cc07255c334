package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

type format string

const (
	formatTable format = "table"
	formatJSON  format = "json"
	formatYAML  format = "yaml"
)

func parseFormat(value string) (format, error) {
	switch f := format(strings.ToLower(strings.TrimSpace(value))); f {
	case "", formatTable:
		return formatTable, nil
	case formatJSON, formatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q", value)
	}
}

// render writes v in the selected format. table draws the tabular form.
func (r *runtime) render(v any, table func(w io.Writer)) error {
	f, err := parseFormat(r.settings.Output)
	if err != nil {
		return err
	}
	out := r.streams.Out
	switch f {
	case formatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		table(tw)
		return tw.Flush()
	}
}

// message prints a one-line confirmation in table mode and a status object
// otherwise.
func (r *runtime) message(text string) error {
	return r.render(statusOut{Status: "ok", Message: text}, func(w io.Writer) {
		fmt.Fprintln(w, text)
	})
}

type statusOut struct {
	Status  string `json:"status" yaml:"status"`
	Message string `json:"message" yaml:"message"`
}

type taskOut struct {
	ID          int64    `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Group       string   `json:"group" yaml:"group"`
	GroupID     int64    `json:"group_id" yaml:"group_id"`
	Due         string   `json:"due,omitempty" yaml:"due,omitempty"`
	Status      string   `json:"status,omitempty" yaml:"status,omitempty"`
	AssignedTo  []string `json:"assigned_to,omitempty" yaml:"assigned_to,omitempty"`
}

type groupOut struct {
	ID          int64  `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Members     int    `json:"members" yaml:"members"`
}

type invitationOut struct {
	ID      int64  `json:"id" yaml:"id"`
	GroupID int64  `json:"group_id" yaml:"group_id"`
	Group   string `json:"group" yaml:"group"`
	From    string `json:"from,omitempty" yaml:"from,omitempty"`
	Sent    string `json:"sent,omitempty" yaml:"sent,omitempty"`
	Status  string `json:"status" yaml:"status"`
}

type memberOut struct {
	Email string `json:"email" yaml:"email"`
	Role  string `json:"role,omitempty" yaml:"role,omitempty"`
}

type dashboardOut struct {
	Subject     string          `json:"subject,omitempty" yaml:"subject,omitempty"`
	Groups      []groupOut      `json:"groups" yaml:"groups"`
	Tasks       []taskOut       `json:"tasks" yaml:"tasks"`
	Invitations []invitationOut `json:"invitations" yaml:"invitations"`
	Warnings    []string        `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

func dashOr(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
