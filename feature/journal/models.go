package journal

import "time"

// MergeRun is one applied merge of a source world into a target world.
type MergeRun struct {
	ID         string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	Target     string    `gorm:"column:target" json:"target"`
	Source     string    `gorm:"column:source" json:"source"`
	Rule       string    `gorm:"column:rule;size:32" json:"rule"`
	StartedAt  time.Time `gorm:"column:started_at;index" json:"started_at"`
	FinishedAt time.Time `gorm:"column:finished_at" json:"finished_at"`
	Copied     int       `gorm:"column:copied" json:"copied"`
	Merged     int       `gorm:"column:merged" json:"merged"`
	Failed     int       `gorm:"column:failed" json:"failed"`
	Inserted   int       `gorm:"column:inserted" json:"inserted"`
	Replaced   int       `gorm:"column:replaced" json:"replaced"`
	Kept       int       `gorm:"column:kept" json:"kept"`
	Identical  int       `gorm:"column:identical" json:"identical"`

	Files []MergeFile `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE" json:"files,omitempty"`
}

// TableName overrides the table name.
func (MergeRun) TableName() string {
	return "merge_runs"
}

// MergeFile is the outcome of one region file within a run.
type MergeFile struct {
	ID        uint   `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	RunID     string `gorm:"column:run_id;size:36;index" json:"-"`
	Name      string `gorm:"column:name" json:"name"`
	Action    string `gorm:"column:action;size:8" json:"action"`
	Inserted  int    `gorm:"column:inserted" json:"inserted"`
	Replaced  int    `gorm:"column:replaced" json:"replaced"`
	Kept      int    `gorm:"column:kept" json:"kept"`
	Identical int    `gorm:"column:identical" json:"identical"`
	Bytes     int    `gorm:"column:bytes" json:"bytes"`
	Error     string `gorm:"column:error" json:"error,omitempty"`
}

// TableName overrides the table name.
func (MergeFile) TableName() string {
	return "merge_files"
}
