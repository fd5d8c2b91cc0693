package repo

type Config struct {
	// Path to the working tree the service operates on
	Path string
}
