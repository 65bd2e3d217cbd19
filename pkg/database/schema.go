package database

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// UsersColumns holds the columns for the "users" table.
	UsersColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Size: 36},
		{Name: "email", Type: field.TypeString, Unique: true},
		{Name: "password_hash", Type: field.TypeString},
		{Name: "first_name", Type: field.TypeString},
		{Name: "last_name", Type: field.TypeString},
		{Name: "role", Type: field.TypeEnum, Enums: []string{"admin", "employee"}, Default: "employee"},
		{Name: "created_at", Type: field.TypeTime},
	}
	// UsersTable holds the schema information for the "users" table.
	UsersTable = &schema.Table{
		Name:       "users",
		Columns:    UsersColumns,
		PrimaryKey: []*schema.Column{UsersColumns[0]},
	}

	// LeadsColumns holds the columns for the "leads" table.
	LeadsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Size: 36},
		{Name: "first_name", Type: field.TypeString},
		{Name: "last_name", Type: field.TypeString},
		{Name: "email", Type: field.TypeString, Unique: true},
		{Name: "phone", Type: field.TypeString, Default: ""},
		{Name: "company", Type: field.TypeString, Default: ""},
		{Name: "city", Type: field.TypeString, Default: ""},
		{Name: "state", Type: field.TypeString, Default: ""},
		{Name: "source", Type: field.TypeString, Default: ""},
		{Name: "status", Type: field.TypeEnum, Enums: []string{"new", "contacted", "qualified", "lost", "won"}, Default: "new"},
		{Name: "score", Type: field.TypeFloat64, Default: 0},
		{Name: "lead_value", Type: field.TypeFloat64, Default: 0},
		{Name: "last_activity_at", Type: field.TypeTime, Nullable: true},
		{Name: "is_qualified", Type: field.TypeBool, Default: false},
		{Name: "assigned_to", Type: field.TypeString, Nullable: true, Size: 36},
		{Name: "created_by", Type: field.TypeString, Size: 36},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// LeadsTable holds the schema information for the "leads" table.
	LeadsTable = &schema.Table{
		Name:       "leads",
		Columns:    LeadsColumns,
		PrimaryKey: []*schema.Column{LeadsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "lead_status", Unique: false, Columns: []*schema.Column{LeadsColumns[9]}},
			{Name: "lead_source", Unique: false, Columns: []*schema.Column{LeadsColumns[8]}},
			{Name: "lead_created_at", Unique: false, Columns: []*schema.Column{LeadsColumns[16]}},
			{Name: "lead_assigned_to", Unique: false, Columns: []*schema.Column{LeadsColumns[14]}},
		},
	}

	// LeadSourcesColumns holds the columns for the "lead_sources" table.
	LeadSourcesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Size: 36},
		{Name: "name", Type: field.TypeString, Unique: true},
		{Name: "description", Type: field.TypeString, Default: ""},
		{Name: "is_active", Type: field.TypeBool, Default: true},
		{Name: "created_at", Type: field.TypeTime},
	}
	// LeadSourcesTable holds the schema information for the "lead_sources" table.
	LeadSourcesTable = &schema.Table{
		Name:       "lead_sources",
		Columns:    LeadSourcesColumns,
		PrimaryKey: []*schema.Column{LeadSourcesColumns[0]},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		UsersTable,
		LeadsTable,
		LeadSourcesTable,
	}
)
