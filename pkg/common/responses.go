package common

import (
	"encoding/json"
	"net/http"
)

// DataResponse is the success envelope of every todo endpoint
type DataResponse struct {
	Data interface{} `json:"data"`
}

// RespondJSON sends a JSON response
func RespondJSON(w http.ResponseWriter, status int, body interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}

// RespondData sends 200 with the payload wrapped in {"data": ...}
func RespondData(w http.ResponseWriter, data interface{}) error {
	return RespondJSON(w, http.StatusOK, DataResponse{Data: data})
}
