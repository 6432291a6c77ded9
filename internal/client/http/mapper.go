package client

import "github.com/tupyy/editor-heartbeat/internal/entity"

func heartbeatEntity2Model(e entity.Heartbeat) heartbeatModel {
	m := heartbeatModel{
		Entity:          e.Entity,
		Type:            e.Type,
		Project:         e.Project,
		Branch:          e.Branch,
		Language:        e.Language,
		IsWrite:         e.IsWrite,
		Editor:          e.Editor,
		OperatingSystem: e.OperatingSystem,
		Machine:         e.Machine,
		Time:            e.Time,
	}

	// category is sent as null when empty
	if e.Category != "" {
		category := e.Category
		m.Category = &category
	}

	return m
}

func heartbeatResponseModel2Entity(m heartbeatResponseModel) entity.HeartbeatResponse {
	return entity.HeartbeatResponse{
		ID:     m.ID,
		Entity: m.Entity,
		Type:   m.Type,
		Time:   m.Time,
	}
}
