package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dbnav/internal/cli/output"
	"github.com/leapstack-labs/dbnav/internal/state"
)

// navOutput is the structured form of the nav command.
type navOutput struct {
	RootPath  string         `json:"rootPath" yaml:"root_path"`
	Current   string         `json:"currentDatabase" yaml:"current_database"`
	Databases []navDatabases `json:"databases" yaml:"databases"`
}

type navDatabases struct {
	Name       string   `json:"name" yaml:"name"`
	Tables     []string `json:"tables" yaml:"tables"`
	AppCreated bool     `json:"appCreated" yaml:"app_created"`
}

// NewNavCommand creates the nav command.
func NewNavCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "nav",
		Aliases: []string{"ls"},
		Short:   "List attached databases and their tables",
		Example: `  # Show the navigation tree
  dbnav nav

  # As JSON for scripting
  dbnav nav -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := newSession(cmd)
			defer s.Close()

			ctx := cmd.Context()
			_ = s.syncer.LoadRootPath(ctx)
			if err := s.syncer.RefreshNavigation(ctx); err != nil {
				return err
			}
			return renderNav(s.out, s.store.Snapshot())
		},
	}
}

func renderNav(r *output.Renderer, snap state.Snapshot) error {
	nav := snap.Navigation()
	v := navOutput{RootPath: snap.RootPath, Current: nav.CurrentDatabase, Databases: []navDatabases{}}
	for _, name := range nav.Names() {
		info := nav.Databases[name]
		tables := info.Tables
		if tables == nil {
			tables = []string{}
		}
		v.Databases = append(v.Databases, navDatabases{Name: name, Tables: tables, AppCreated: info.AppCreated})
	}
	if ok, err := r.Structured(v); ok {
		return err
	}

	r.Header("Databases")
	if v.RootPath != "" {
		r.StatusLine("Root", v.RootPath)
	}
	if len(v.Databases) == 0 {
		r.Println(r.Muted("No databases attached"))
		return nil
	}

	markdown := r.EffectiveMode() == output.ModeMarkdown
	for _, db := range v.Databases {
		name := db.Name
		if db.Name == v.Current {
			if markdown {
				name = "**" + name + "** (current)"
			} else {
				name = r.Styles().Current.Render(name) + r.Muted(" (current)")
			}
		}
		if markdown {
			r.Println("- " + name)
		} else {
			r.Println(name)
		}
		for _, t := range db.Tables {
			if markdown {
				r.Println("  - " + t)
			} else {
				r.Println("  " + t)
			}
		}
	}
	return nil
}
