package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table definitions applied by ent's migration engine on Open.

var (
	// SnapshotsColumns holds the columns for the "snapshots" table.
	SnapshotsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "data", Type: field.TypeString, Size: 2147483647},
	}
	// SnapshotsTable holds the schema information for the "snapshots" table.
	SnapshotsTable = &schema.Table{
		Name:       "snapshots",
		Columns:    SnapshotsColumns,
		PrimaryKey: []*schema.Column{SnapshotsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "snapshot_sequence", Unique: false, Columns: []*schema.Column{SnapshotsColumns[1]}},
			{Name: "snapshot_timestamp", Unique: false, Columns: []*schema.Column{SnapshotsColumns[2]}},
		},
	}

	// ReviewEventsColumns holds the columns for the "review_events" table.
	ReviewEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "event_id", Type: field.TypeString, Unique: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeString},
		{Name: "mode", Type: field.TypeString},
		{Name: "topic", Type: field.TypeString},
		{Name: "key", Type: field.TypeString, Default: ""},
		{Name: "variant", Type: field.TypeString, Default: ""},
		{Name: "correct", Type: field.TypeBool},
		{Name: "response_ms", Type: field.TypeInt64},
		{Name: "quality", Type: field.TypeFloat64},
		{Name: "ease_factor", Type: field.TypeFloat64},
		{Name: "interval_days", Type: field.TypeInt},
		{Name: "maturity", Type: field.TypeString},
	}
	// ReviewEventsTable holds the schema information for the "review_events" table.
	ReviewEventsTable = &schema.Table{
		Name:       "review_events",
		Columns:    ReviewEventsColumns,
		PrimaryKey: []*schema.Column{ReviewEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "reviewevent_timestamp", Unique: false, Columns: []*schema.Column{ReviewEventsColumns[3]}},
			{Name: "reviewevent_session_id", Unique: false, Columns: []*schema.Column{ReviewEventsColumns[4]}},
			{Name: "reviewevent_mode_topic", Unique: false, Columns: []*schema.Column{ReviewEventsColumns[5], ReviewEventsColumns[6]}},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		SnapshotsTable,
		ReviewEventsTable,
	}
)
