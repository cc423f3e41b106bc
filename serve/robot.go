package serve

import (
	"encoding/json"
	"fmt"
	"net/http"

	"agricam/robot"
)

type RobotStatusServer struct {
	Robot *robot.Robot
}

func (s *RobotStatusServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Robot.State())
}

// moveRequest is the command posted by the dashboard joystick. Coordinates
// left out of the request fall back to the field center.
type moveRequest struct {
	Command string `json:"command"`
	X       *int   `json:"x"`
	Y       *int   `json:"y"`
}

type controlResponse struct {
	Success  bool         `json:"success"`
	Message  string       `json:"message"`
	Position *robot.State `json:"position,omitempty"`
}

type RobotControlServer struct {
	Robot *robot.Robot
}

func (s *RobotControlServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, &controlResponse{
			Success: false,
			Message: fmt.Sprintf("bad request: %v", err),
		})
		return
	}
	if req.Command != "move" {
		writeJSON(w, http.StatusBadRequest, &controlResponse{
			Success: false,
			Message: "unknown command",
		})
		return
	}

	x, y := 50, 50
	if req.X != nil {
		x = *req.X
	}
	if req.Y != nil {
		y = *req.Y
	}
	state := s.Robot.Move(x, y)
	writeJSON(w, http.StatusOK, &controlResponse{
		Success:  true,
		Message:  fmt.Sprintf("Robot moved to (%d, %d)", x, y),
		Position: &state,
	})
}
