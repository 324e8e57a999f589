// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// docsgen writes markdown and tldr pages for every rowsync subcommand. Flags
// and usage come from the live command tree. Examples come from an optional
// examples.yaml in the docs directory.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/rowsync/internal/command"
	"github.com/tfctl/rowsync/internal/version"
)

type Subcommand struct {
	ID       string
	Short    string
	Usage    string
	Flags    []Flag
	Examples []Example
	Notes    []string
}

type Flag struct {
	ID          string
	Syntax      string
	Description string
	Default     string
}

type Example struct {
	Command     string `yaml:"command"`
	Description string `yaml:"description"`
}

// Extras is the shape of examples.yaml, keyed by subcommand.
type Extras map[string]struct {
	Examples []Example `yaml:"examples"`
	Notes    []string  `yaml:"notes,omitempty"`
}

type TemplateData struct {
	Subcommand
	Date    string
	Version string
	IDUpper string
}

type Outputs struct {
	Template string
	Folder   string
	Prefix   string
	Suffix   string
}

const markdownTmpl = `# rowsync {{ .ID }}

{{ .Short }}

## Usage

    {{ .Usage }}

## Flags
{{ range .Flags }}
* ` + "`{{ .Syntax }}`" + ` {{ .Description }}{{ if .Default }} (default: {{ .Default }}){{ end }}
{{- end }}
{{ if .Examples }}
## Examples
{{ range .Examples }}
{{ .Description }}

    {{ .Command }}
{{ end }}{{ end }}{{ if .Notes }}
## Notes
{{ range .Notes }}
* {{ . }}
{{- end }}
{{ end }}
_{{ .IDUpper }} {{ .Version }}, {{ .Date }}_
`

const tldrTmpl = `# rowsync {{ .ID }}

> {{ .Short }}.
{{ range .Examples }}
- {{ .Description }}:

` + "`{{ .Command }}`" + `
{{ end }}`

func main() {
	if len(os.Args) < 2 { //nolint:mnd
		fmt.Fprintln(os.Stderr, "usage: docsgen <docs dir>")
		os.Exit(1)
	}

	if err := run(os.Args[1]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(docs string) error {
	app, err := command.InitApp(context.Background(), []string{"rowsync"})
	if err != nil {
		return err
	}

	extras, err := loadExtras(filepath.Join(docs, "examples.yaml"))
	if err != nil {
		return err
	}

	types := []Outputs{
		{Template: markdownTmpl, Folder: filepath.Join(docs, "commands"), Suffix: ".md"},
		{Template: tldrTmpl, Folder: filepath.Join(docs, "tldr"), Prefix: "rowsync-", Suffix: ".md"},
	}

	for _, sub := range subcommands(app, extras) {
		metadata := TemplateData{
			Subcommand: sub,
			Date:       time.Now().Format("January 2, 2006"),
			Version:    getVersion(),
			IDUpper:    strings.ToUpper(sub.ID),
		}

		for _, t := range types {
			if err := render(t, metadata); err != nil {
				return err
			}
		}
	}

	return nil
}

// subcommands describes each visible subcommand of app, merging in extras.
func subcommands(app *cli.Command, extras Extras) []Subcommand {
	var subs []Subcommand
	for _, cmd := range app.Commands {
		if cmd.Hidden {
			continue
		}

		sub := Subcommand{
			ID:    cmd.Name,
			Short: cmd.Usage,
			Usage: cmd.UsageText,
		}
		if sub.Usage == "" {
			sub.Usage = "rowsync " + cmd.Name
		}

		for _, f := range cmd.Flags {
			if v, ok := f.(interface{ IsVisible() bool }); ok && !v.IsVisible() {
				continue
			}
			sub.Flags = append(sub.Flags, describe(f))
		}
		sort.Slice(sub.Flags, func(i, j int) bool {
			return sub.Flags[i].ID < sub.Flags[j].ID
		})

		if x, ok := extras[cmd.Name]; ok {
			sub.Examples = x.Examples
			sub.Notes = x.Notes
		}

		subs = append(subs, sub)
	}
	return subs
}

func describe(f cli.Flag) Flag {
	names := f.Names()
	syntax := make([]string, 0, len(names))
	for _, n := range names {
		if len(n) == 1 {
			syntax = append(syntax, "-"+n)
		} else {
			syntax = append(syntax, "--"+n)
		}
	}

	flag := Flag{ID: names[0], Syntax: strings.Join(syntax, ", ")}
	if u, ok := f.(interface{ GetUsage() string }); ok {
		flag.Description = u.GetUsage()
	}
	if d, ok := f.(interface{ GetDefaultText() string }); ok {
		flag.Default = d.GetDefaultText()
	}
	return flag
}

func loadExtras(path string) (Extras, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Extras{}, nil
	}
	if err != nil {
		return nil, err
	}

	var extras Extras
	if err := yaml.Unmarshal(data, &extras); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return extras, nil
}

func render(t Outputs, data TemplateData) error {
	if err := os.MkdirAll(t.Folder, 0o755); err != nil { //nolint:mnd
		return err
	}

	name := filepath.Join(t.Folder, t.Prefix+data.ID+t.Suffix)
	fmt.Println("Generating", name)

	tmpl, err := template.New(filepath.Base(name)).Parse(t.Template)
	if err != nil {
		return err
	}

	file, err := os.Create(name)
	if err != nil {
		return err
	}
	defer file.Close()

	return tmpl.Execute(file, data)
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to the build version if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return version.Version
	}

	v := strings.TrimSpace(string(out))
	return strings.TrimPrefix(v, "v")
}
