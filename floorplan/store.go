package floorplan

import "context"

// Scope carries the tenant every read and write is filtered by. It is
// passed explicitly into each editor operation.
type Scope struct {
	Context  context.Context
	TenantID uint
}

func NewScope(ctx context.Context, tenantID uint) Scope {
	return Scope{Context: ctx, TenantID: tenantID}
}

func (s Scope) Validate() error {
	if s.TenantID == 0 {
		return ErrNoTenant
	}
	return nil
}

// Ctx never returns nil.
func (s Scope) Ctx() context.Context {
	if s.Context == nil {
		return context.Background()
	}
	return s.Context
}

func (s Scope) WithContext(ctx context.Context) Scope {
	s.Context = ctx
	return s
}

type PositionUpdate struct {
	ID string `json:"id"`
	X  int    `json:"x"`
	Y  int    `json:"y"`
}

type LabelInput struct {
	Name    string
	X       int
	Y       int
	FloorID *string
}

// Store persists committed layout changes. Implementations must filter
// every statement by scope.TenantID.
type Store interface {
	UpdateTablePositions(scope Scope, updates []PositionUpdate) error
	UpdateTableSize(scope Scope, tableID string, width, height int) error
	UpdateTableShape(scope Scope, tableID string, shape Shape) error
	UpdateTableGroup(scope Scope, tableIDs []string, groupID *string) error
	UpdateLabelPosition(scope Scope, labelID string, x, y int) error
	CreateLabel(scope Scope, in LabelInput) (Label, error)
	DeleteLabel(scope Scope, labelID string) error
}
