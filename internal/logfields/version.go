package logfields

import "go.uber.org/zap"

func BumpKind(val string) zap.Field {
	return zap.String("bump_kind", val)
}

func CurrentVersion(val string) zap.Field {
	return zap.String("version.current", val)
}

func NewVersion(val string) zap.Field {
	return zap.String("version.new", val)
}

func VersionFile(val string) zap.Field {
	return zap.String("version_file", val)
}
