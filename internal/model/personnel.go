package model

import "time"

// Personnel represents a member of the coverage team (photographer,
// videographer, producer).  This struct corresponds to a row in the
// `personnel` table.
//
// Fields:
//  ID        – primary key identifier (UUID string).
//  FullName  – display name.
//  Role      – production role (e.g. PHOTOGRAPHER, VIDEOGRAPHER, PRODUCER).
//  Email     – unique contact address.
//  IsActive  – whether the member is currently on the roster.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Personnel struct {
    ID        string    // personnel.id
    FullName  string    // personnel.full_name
    Role      string    // personnel.role
    Email     string    // personnel.email
    IsActive  bool      // personnel.is_active
    CreatedAt time.Time // personnel.created_at
    UpdatedAt time.Time // personnel.updated_at
}
