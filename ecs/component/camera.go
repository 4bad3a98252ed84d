package component

const DefaultCameraSmoothness = 5.0

// CameraBounds limits the camera center. Min and max may be equal.
type CameraBounds struct {
	MinX float64
	MaxX float64
	MinY float64
	MaxY float64
}

type Camera struct {
	X          float64
	Y          float64
	Smoothness float64
	Bounds     *CameraBounds
	ViewportW  float64
	ViewportH  float64
}

var CameraComponent = NewComponent[Camera]()
