package types

type EnvName string
type SnapshotMode string

const (
	EnvProd  = EnvName("prod")
	EnvDev   = EnvName("dev")
	EnvLocal = EnvName("local")
)

const (
	SnapshotModeLocal = SnapshotMode("LOCAL")
	SnapshotModeS3    = SnapshotMode("S3")
)
