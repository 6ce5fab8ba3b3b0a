package handlers

// AppHandlers holds every handler the router wires up.
type AppHandlers struct {
	AuthHandler   *AuthHandler
	UserHandler   *UserHandler
	PieceHandler  *PieceHandler
	ReviewHandler *ReviewHandler
	UploadHandler *UploadHandler
	FileHandler   *FileHandler
}
