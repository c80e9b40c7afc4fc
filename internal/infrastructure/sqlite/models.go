package sqlite

import "time"

// Session is one remembered editing position: the cursor row/col and the
// mode name recorded when the file was last closed. ID is a uuid assigned
// on first insert; Path is the absolute file path and is unique per row.
type Session struct {
	ID        string
	Path      string
	Row       int
	Col       int
	Mode      string
	UpdatedAt time.Time
}

// sessionModel mirrors the sessions table row. Timestamps are stored as
// Unix seconds; conversion to time.Time happens at the repository edge.
type sessionModel struct {
	ID        string
	Path      string
	Row       int
	Col       int
	Mode      string
	UpdatedAt int64
}

func toSessionModel(s *Session) sessionModel {
	return sessionModel{
		ID:        s.ID,
		Path:      s.Path,
		Row:       s.Row,
		Col:       s.Col,
		Mode:      s.Mode,
		UpdatedAt: s.UpdatedAt.Unix(),
	}
}

func (m sessionModel) toSession() *Session {
	return &Session{
		ID:        m.ID,
		Path:      m.Path,
		Row:       m.Row,
		Col:       m.Col,
		Mode:      m.Mode,
		UpdatedAt: time.Unix(m.UpdatedAt, 0),
	}
}
