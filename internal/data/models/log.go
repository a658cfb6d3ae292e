package models

import "encoding/json"

// LogRecord is a single stored log file as served by the Log Store.
//
// The store is inconsistent about the name field: the by-id endpoint emits
// "name" while the latest and list endpoints emit "filename". Both decode into
// Name; "name" wins when both are present.
type LogRecord struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

func (r *LogRecord) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID       int64  `json:"id"`
		Name     string `json:"name"`
		Filename string `json:"filename"`
		Content  string `json:"content"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	r.ID = raw.ID
	r.Name = raw.Name
	if r.Name == "" {
		r.Name = raw.Filename
	}
	r.Content = raw.Content
	return nil
}

// LogUpload is one entry of a batch submitted to the Log Store ingestion endpoint.
type LogUpload struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}
