package model

import "time"

// Project groups the events produced for a single client engagement.
// This struct corresponds to a row in the `projects` table.
//
// Fields:
//  ID        – primary key identifier (UUID string).
//  Name      – unique project name.
//  Client    – client the production is delivered to.
//  Status    – state of the project (ACTIVE, ARCHIVED).
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Project struct {
    ID        string    // projects.id
    Name      string    // projects.name
    Client    string    // projects.client
    Status    string    // projects.status
    CreatedAt time.Time // projects.created_at
    UpdatedAt time.Time // projects.updated_at
}
