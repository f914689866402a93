package consts

const (
	ApplicationName    = "Gallery Backend"
	ApplicationVersion = "v1.0.0"
)
