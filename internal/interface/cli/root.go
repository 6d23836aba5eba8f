// Package cli implements the command-line interface of the campus
// registry. Each subcommand maps to one application handler; the CLI
// itself holds no business rules.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/campus-hub/campus-registry/internal/application/command"
	"github.com/campus-hub/campus-registry/internal/application/query"
	"github.com/campus-hub/campus-registry/internal/domain/roster"
	"github.com/campus-hub/campus-registry/internal/infrastructure/persistence/postgres"
	"github.com/campus-hub/campus-registry/internal/infrastructure/persistence/redis"
	"github.com/campus-hub/campus-registry/pkg/logger"
)

// App bundles the application handlers behind the CLI commands.
type App struct {
	Logger *logger.Logger
	Repos  roster.Repositories

	// Cache is nil when Redis is disabled.
	Cache *redis.RosterCache

	// Conn is nil for the jsonfile backend. Needed for migrations.
	Conn *postgres.Connection

	SubmitStudent    *command.SubmitStudentHandler
	SubmitInstructor *command.SubmitInstructorHandler
	SubmitCourse     *command.SubmitCourseHandler
	Register         *command.RegisterStudentHandler
	Assign           *command.AssignInstructorHandler
	Update           *command.UpdateRecordHandler
	Remove           *command.RemoveRecordHandler

	Search  *query.SearchHandler
	Lists   *query.ListHandler
	Records *query.GetHandler
	Export  *query.ExportHandler
}

// NewApp wires the handlers over the given repositories and cache.
func NewApp(log *logger.Logger, repos roster.Repositories, cache *redis.RosterCache, conn *postgres.Connection) *App {
	lists := query.NewListHandler(repos, cache)

	return &App{
		Logger: log,
		Repos:  repos,
		Cache:  cache,
		Conn:   conn,

		SubmitStudent:    command.NewSubmitStudentHandler(repos.Students, cache),
		SubmitInstructor: command.NewSubmitInstructorHandler(repos.Instructors, cache),
		SubmitCourse:     command.NewSubmitCourseHandler(repos.Courses, repos.Instructors, cache),
		Register:         command.NewRegisterStudentHandler(repos.Students, repos.Courses, repos.Enrollments, cache),
		Assign:           command.NewAssignInstructorHandler(repos.Courses, repos.Instructors, cache),
		Update:           command.NewUpdateRecordHandler(repos, cache),
		Remove:           command.NewRemoveRecordHandler(repos, cache),

		Search:  query.NewSearchHandler(repos),
		Lists:   lists,
		Records: query.NewGetHandler(repos, cache),
		Export:  query.NewExportHandler(lists),
	}
}

// NewRootCommand assembles the command tree.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "registry",
		Short:         "Campus registry for students, instructors, and courses",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newAddStudentCommand(app),
		newAddInstructorCommand(app),
		newAddCourseCommand(app),
		newRegisterCommand(app),
		newAssignCommand(app),
		newUpdateCommand(app),
		newRemoveCommand(app),
		newListCommand(app),
		newShowCommand(app),
		newSearchCommand(app),
		newExportCommand(app),
		newMigrateCommand(app),
		newRefreshCacheCommand(app),
	)

	return root
}
