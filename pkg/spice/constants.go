package spice

// TimeFormat is the default timout picture used across the package.
const TimeFormat = "YYYY-MON-DD HR:MN:SC ::RND"

// Day is the number of seconds in a day.
const Day = 86400.0

// Message capacities of getmsg_c, terminator included.
const (
	ShortMessageLen = 26
	LongMessageLen  = 1841
)

// Output capacities used by the convenience wrappers.
const (
	BodyNameLen = 37
	FileNameLen = 256
	FileTypeLen = 33
	UTCLen      = 64
	SCLKLen     = 64
	// MaxBodyValues bounds bodvrd/bodvcd and pool reads.
	MaxBodyValues = 256
)
