package util

func GetAppName() string {
	return "FigStudio"
}

func GetAppVersion() string {
	return "1.0.0"
}
