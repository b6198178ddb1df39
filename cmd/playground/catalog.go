package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ettle/strcase"
	"github.com/olekukonko/tablewriter"

	"github.com/goliatone/go-playground/components/playground"
	"github.com/goliatone/go-playground/components/playground/queries"
)

type catalogListCmd struct {
	Manifest string `type:"path" help:"Optional manifest applied over the built-in catalog."`
	Category string `help:"Only list widgets in this category."`
}

func (cmd *catalogListCmd) Run(ctx context.Context) error {
	registry, err := loadRegistry(cmd.Manifest)
	if err != nil {
		return err
	}
	return listCatalog(ctx, os.Stdout, registry, cmd.Category)
}

func listCatalog(ctx context.Context, w io.Writer, catalog playground.Catalog, category string) error {
	defs, err := queries.NewCatalogQuery(catalog).Query(ctx, queries.CatalogInput{Category: category})
	if err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	table.Header("Key", "Name", "Category", "DOM ID", "Default Status", "Delayable", "Actions")
	for _, def := range defs {
		actions := make([]string, 0, len(def.Actions))
		for _, action := range def.Actions {
			actions = append(actions, action.Name)
		}
		if err := table.Append([]string{
			string(def.Key),
			def.Name,
			def.Category,
			def.ElementID(),
			def.DefaultStatus,
			strconv.FormatBool(def.Delayable),
			strings.Join(actions, ","),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

type catalogScaffoldCmd struct {
	Key           string   `required:"" help:"Widget key (camelCase, kebab-case or snake_case)."`
	ManifestPath  string   `required:"" type:"path" help:"Manifest YAML file to create or update."`
	Name          string   `help:"Display name (defaults to the title cased key)."`
	Description   string   `help:"One-line description."`
	Category      string   `help:"Widget category (defaults to the built-in one)."`
	DefaultStatus string   `name:"default-status" help:"Status shown before any gesture."`
	Delayable     string   `enum:"auto,true,false" default:"auto" help:"Whether the global delay applies (auto keeps the built-in value)."`
	DOMID         string   `name:"dom-id" help:"DOM id of the widget element (defaults to the built-in one)."`
	Action        []string `help:"Accepted action names (use multiple --action flags)."`
	Overwrite     bool     `help:"Replace an existing manifest entry for the key."`
}

func (cmd *catalogScaffoldCmd) Run(_ context.Context) error {
	path, err := filepath.Abs(cmd.ManifestPath)
	if err != nil {
		return fmt.Errorf("playground: resolve manifest path: %w", err)
	}
	doc, err := loadOrInitManifest(path)
	if err != nil {
		return err
	}
	def, err := cmd.definition()
	if err != nil {
		return err
	}
	if err := upsertDefinition(doc, def, cmd.Overwrite); err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return err
	}
	if err := writeManifest(path, doc); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "manifest %s now defines %s (%s)\n", path, def.Key, def.ElementID())
	return nil
}

// definition starts from the built-in entry for the key and applies the flags.
func (cmd *catalogScaffoldCmd) definition() (playground.WidgetDefinition, error) {
	key, err := playground.ParseWidgetKey(cmd.Key)
	if err != nil {
		return playground.WidgetDefinition{}, err
	}
	def := playground.WidgetDefinition{Key: key}
	if builtin, ok := playground.NewRegistry().Definition(key); ok {
		def = builtin
	}
	if def.Name == "" {
		def.Name = strcase.ToCase(string(key), strcase.TitleCase, ' ')
	}
	if cmd.Name != "" {
		def.Name = cmd.Name
	}
	if cmd.Description != "" {
		def.Description = cmd.Description
	}
	if cmd.Category != "" {
		def.Category = strcase.ToKebab(cmd.Category)
	}
	if cmd.DefaultStatus != "" {
		def.DefaultStatus = cmd.DefaultStatus
	}
	if cmd.Delayable != "auto" && cmd.Delayable != "" {
		def.Delayable = cmd.Delayable == "true"
	}
	if cmd.DOMID != "" {
		def.DOMID = strcase.ToKebab(cmd.DOMID)
	}
	if len(cmd.Action) > 0 {
		actions := make([]playground.WidgetAction, 0, len(cmd.Action))
		for _, name := range cmd.Action {
			name = strcase.ToSnake(strings.TrimSpace(name))
			if name == "" {
				continue
			}
			action, ok := def.Action(name)
			if !ok {
				action = playground.WidgetAction{Name: name, Schema: map[string]any{"type": "object"}}
			}
			actions = append(actions, action)
		}
		def.Actions = actions
	}
	return def, nil
}

func upsertDefinition(doc *playground.CatalogManifest, def playground.WidgetDefinition, overwrite bool) error {
	for i, existing := range doc.Widgets {
		if existing.Key != def.Key {
			continue
		}
		if !overwrite {
			return fmt.Errorf("playground: manifest already defines widget %s (use --overwrite to replace)", def.Key)
		}
		doc.Widgets[i] = def
		return nil
	}
	doc.Widgets = append(doc.Widgets, def)
	return nil
}

func loadOrInitManifest(path string) (*playground.CatalogManifest, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &playground.CatalogManifest{
				Version: playground.ManifestVersion,
				Widgets: []playground.WidgetDefinition{},
				Source:  path,
			}, nil
		}
		return nil, fmt.Errorf("playground: stat manifest: %w", err)
	}
	return playground.ReadManifest(path)
}

func writeManifest(path string, doc *playground.CatalogManifest) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("playground: create manifest dir: %w", err)
	}
	f, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("playground: write manifest %s: %w", path, err)
	}
	defer f.Close()
	return playground.EncodeManifest(f, doc)
}
