package domain

type ClientState string

const (
	ClientStateActive     ClientState = "ACTIVE"
	ClientStateRestricted ClientState = "RESTRICTED"
)

// Client state is derived from loan history by the recomputation sweep, but
// an admin override through SetState sticks until the next recomputation.
type Client struct {
	ID    int32       `json:"id"`
	Name  string      `json:"name"`
	Rut   string      `json:"rut"`
	Phone string      `json:"phone"`
	Email string      `json:"email"`
	State ClientState `json:"state"`
}
