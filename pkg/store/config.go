package store

// Config locates the store on disk.
type Config interface {
	BasePath() string
}
