package adaptercli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/matchsync/internal/cli"
	"github.com/iudanet/matchsync/pkg/models"
)

// Локальные изменения: хранилище меняется, хаб получает событие

func (a *app) newTouchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "touch <entity> <value> [Name=value ...]",
		Short: "Create or change a local object and publish Updated",
		Long: `Sets properties of a local object, creating it when missing, and tells the hub.
Nested properties use dotted names.

Example:
  matchsync-adapter touch Person 17 FirstName=Ann Address.City=Oslo`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pairs, err := cli.ParsePairs(args[2:])
			if err != nil {
				return err
			}
			sess, err := a.openSession(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer sess.close()

			if err := sess.service.Touch(cmd.Context(), args[0], args[1], pairs...); err != nil {
				return err
			}
			a.term.Printf("Updated %s %s\n", args[0], args[1])
			return nil
		},
	}
}

func (a *app) newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <entity> <value>",
		Short: "Delete a local object and publish Deleted",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.openSession(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer sess.close()

			if err := sess.service.Remove(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			a.term.Printf("Deleted %s %s\n", args[0], args[1])
			return nil
		},
	}
}

func (a *app) newMoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "move <entity> <old-value> <new-value>",
		Short: "Give a local object a new key value and publish Moved",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.openSession(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer sess.close()

			if err := sess.service.Move(cmd.Context(), args[0], args[1], args[2]); err != nil {
				return err
			}
			a.term.Printf("Moved %s %s to %s\n", args[0], args[1], args[2])
			return nil
		},
	}
}

// objectView is the printed form of a stored object
type objectView struct {
	Data      *models.Data `json:"data,omitempty"`
	Entity    string       `json:"entity"`
	Value     string       `json:"value"`
	UpdatedAt string       `json:"updated_at"`
}

func (a *app) newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list <entity>",
		Short: "List the local objects of an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, err := cli.NewPrinter(a.output, a.term)
			if err != nil {
				return err
			}
			sess, err := a.openSession(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer sess.close()

			objects, err := sess.service.List(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			views := make([]objectView, 0, len(objects))
			for _, obj := range objects {
				views = append(views, objectView{
					Entity:    args[0],
					Value:     obj.Value,
					UpdatedAt: obj.UpdatedAt.UTC().Format(time.RFC3339),
					Data:      obj.Data,
				})
			}
			return printer.Print(views)
		},
	}
}
