package models

import "time"

// Game outcome constants
const (
	OutcomeWon  = "won"
	OutcomeLost = "lost"
)

// Selector step directions
const (
	DirectionUp   = "up"
	DirectionDown = "down"
)

// Tray actions
const (
	TrayScrollLeft  = "scroll_left"
	TrayScrollRight = "scroll_right"
	TrayWheel       = "wheel"
	TrayResize      = "resize"
)

// Selector input events
const (
	InputPointerDown  = "pointer_down"
	InputPointerMove  = "pointer_move"
	InputPointerUp    = "pointer_up"
	InputPointerLeave = "pointer_leave"
	InputWheel        = "wheel"
	InputKey          = "key"
)

// Request types

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Nil fields keep their stored value
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type DropRequest struct {
	PieceID int `json:"piece_id"`
	Row     int `json:"row"`
	Col     int `json:"col"`
}

type StepRequest struct {
	Direction string `json:"direction"`
}

type TrayRequest struct {
	Action string  `json:"action"`
	DeltaX float64 `json:"delta_x"`
	DeltaY float64 `json:"delta_y"`
	Width  float64 `json:"width"` // visible tray width, for resize
}

// SelectorInputRequest carries one pointer, wheel or key event.
// Key is a DOM key name such as "ArrowUp".
type SelectorInputRequest struct {
	Event  string  `json:"event"`
	Y      float64 `json:"y"`
	DeltaY float64 `json:"delta_y"`
	Key    string  `json:"key"`
}

// Response types

type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type DropResponse struct {
	Accepted bool         `json:"accepted"`
	Game     GameSnapshot `json:"game"`
}

type StepResponse struct {
	Moved bool         `json:"moved"`
	Game  GameSnapshot `json:"game"`
}

type InputResponse struct {
	Handled bool         `json:"handled"`
	Game    GameSnapshot `json:"game"`
}

// Domain types

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Item struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type GameResult struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Outcome          string    `json:"outcome"`
	PuzzlesCompleted int       `json:"puzzles_completed"`
	CodeSubmitted    string    `json:"code_submitted"`
	SecondsRemaining int       `json:"seconds_remaining"`
	StartedAt        time.Time `json:"started_at"`
	FinishedAt       time.Time `json:"finished_at"`
	Finished         string    `json:"finished,omitempty"` // e.g. "3 hours ago"
}

// Game snapshot types

type GameSnapshot struct {
	ID         string          `json:"id"`
	Stage      string          `json:"stage"`
	Clock      string          `json:"clock"`
	Remaining  int             `json:"remaining_seconds"`
	StartedAt  *time.Time      `json:"started_at,omitempty"`
	Started    string          `json:"started,omitempty"` // e.g. "2 minutes ago"
	FinishedAt *time.Time      `json:"finished_at,omitempty"`
	Progress   ProgressView    `json:"progress"`
	Puzzle     *PuzzleSnapshot `json:"puzzle,omitempty"`
	Code       *CodeSnapshot   `json:"code,omitempty"`
}

type ProgressView struct {
	Current   int    `json:"current"`
	Total     int    `json:"total"`
	Completed []bool `json:"completed"`
}

type PuzzleSnapshot struct {
	Index       int         `json:"index"`
	Image       string      `json:"image"`
	Rows        int         `json:"rows"`
	Cols        int         `json:"cols"`
	Loading     bool        `json:"loading"`
	LoadError   string      `json:"load_error,omitempty"`
	PieceWidth  int         `json:"piece_width,omitempty"`
	PieceHeight int         `json:"piece_height,omitempty"`
	Tray        []PieceView `json:"tray"`
	Placed      []PieceView `json:"placed"`
	Complete    bool        `json:"complete"`
	Hint        string      `json:"hint,omitempty"`
	ScrollTray  bool        `json:"scroll_tray"`
	TrayView    *TrayView   `json:"tray_view,omitempty"`
}

type TrayView struct {
	Offset        float64 `json:"offset"`
	Target        float64 `json:"target"`
	ScrollWidth   float64 `json:"scroll_width"`
	ClientWidth   float64 `json:"client_width"`
	Scrolling     bool    `json:"scrolling"`
	ResizePending bool    `json:"resize_pending"`
}

type PieceView struct {
	ID  int `json:"id"`
	Row int `json:"row"`
	Col int `json:"col"`
}

type CodeSnapshot struct {
	Code      string         `json:"code"`
	FinalHint string         `json:"final_hint"`
	Selectors []SelectorView `json:"selectors"`
}

type SelectorView struct {
	Index       int                `json:"index"`
	Value       string             `json:"value"`
	Options     []string           `json:"options"`
	State       string             `json:"state"`
	Animating   bool               `json:"animating"`
	CanStepUp   bool               `json:"can_step_up"`
	CanStepDown bool               `json:"can_step_down"`
	TranslateY  float64            `json:"translate_y"`
	Height      float64            `json:"height"`
	Items       []SelectorItemView `json:"items"`
}

type SelectorItemView struct {
	Value    string  `json:"value"`
	Selected bool    `json:"selected"`
	Scale    float64 `json:"scale"`
	Opacity  float64 `json:"opacity"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
