package entities

import (
	"encoding/json"

	pkgerrors "todos-backend/pkg/errors"
	"todos-backend/pkg/utils"
)

// Client-facing messages for rejected input and unreadable records
const (
	MsgInvalidDraft = "Request body is not a valid todo"
	MsgInvalidItem  = "Item is not a todo"
)

// DraftTodo is an accepted create request. It carries no id.
type DraftTodo struct {
	Name      string `validate:"required,min=1"`
	Completed *bool  `validate:"required"`
}

// draftPayload mirrors the wire shape so that field presence and types can be checked.
// A json.RawMessage receives "null" as well, which makes an explicit null id detectable.
type draftPayload struct {
	ID        json.RawMessage `json:"id"`
	Name      *string         `json:"name"`
	Completed *bool           `json:"completed"`
}

// ParseDraftTodo decodes an untrusted request body into a DraftTodo.
// The body must be a JSON object without an id, with a non-empty string name
// and a boolean completed. Unknown fields are ignored.
func ParseDraftTodo(body []byte) (DraftTodo, error) {
	var payload draftPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return DraftTodo{}, invalidDraft(err)
	}

	if payload.ID != nil {
		return DraftTodo{}, invalidDraft(nil)
	}
	if payload.Name == nil {
		return DraftTodo{}, invalidDraft(nil)
	}

	draft := DraftTodo{
		Name:      *payload.Name,
		Completed: payload.Completed,
	}
	if err := utils.ValidateStruct(draft); err != nil {
		return DraftTodo{}, invalidDraft(err)
	}

	return draft, nil
}

// IsCompleted returns the requested completion flag
func (d DraftTodo) IsCompleted() bool {
	return d.Completed != nil && *d.Completed
}

func invalidDraft(cause error) error {
	err := pkgerrors.NewValidationError(MsgInvalidDraft).WithCode(pkgerrors.CodeInvalidBody)
	if cause != nil {
		err = err.WithCause(cause)
	}
	return err
}
