package prompts

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/mbaumgart/perdiem/pkg/pagination"
)

var errStatic = errors.New("prompt management requires a database")

// Static returns a System that serves only the built-in instructions and
// specifications. Used by the CLI, where no database is available and
// overrides do not apply.
func Static() System {
	return static{}
}

type static struct{}

func (static) Handler() *Handler { return nil }

func (static) List(
	context.Context,
	pagination.PageRequest,
	Filters,
) (*pagination.PageResult[Prompt], error) {
	return nil, errStatic
}

func (static) Find(context.Context, uuid.UUID) (*Prompt, error)            { return nil, errStatic }
func (static) Create(context.Context, CreateCommand) (*Prompt, error)      { return nil, errStatic }
func (static) Update(context.Context, uuid.UUID, UpdateCommand) (*Prompt, error) {
	return nil, errStatic
}
func (static) Delete(context.Context, uuid.UUID) error                { return errStatic }
func (static) Activate(context.Context, uuid.UUID) (*Prompt, error)   { return nil, errStatic }
func (static) Deactivate(context.Context, uuid.UUID) (*Prompt, error) { return nil, errStatic }

func (static) Instructions(_ context.Context, stage Stage) (string, error) {
	return DefaultInstructions(stage)
}

func (static) Spec(_ context.Context, stage Stage) (string, error) {
	return DefaultSpec(stage)
}
