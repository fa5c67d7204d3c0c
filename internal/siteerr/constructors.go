package siteerr

// Convenience constructors for common failure sites.

// Traversal errors

func MetadataRead(path string, cause error) *BuildError {
	return Wrap(cause, KindMetadataRead, path, "unable to read metadata")
}

func DirectoryRead(path string, cause error) *BuildError {
	return Wrap(cause, KindDirectoryRead, path, "unable to read directory")
}

func FileRead(path string, cause error) *BuildError {
	return Wrap(cause, KindFileRead, path, "unable to read file")
}

func InvalidFileName(dir, name string) *BuildError {
	return New(KindInvalidFileName, dir, "invalid UTF-8 filename: "+name)
}

// Render errors

func Collision(dir, outName, a, b string) *BuildError {
	return New(KindCollision, dir, "entries '"+a+"' and '"+b+"' both map to output name '"+outName+"'")
}

// Output errors

func Write(path string, cause error) *BuildError {
	return Wrap(cause, KindWrite, path, "unable to write file")
}

func DirectoryCreate(path string, cause error) *BuildError {
	return Wrap(cause, KindDirectoryCreate, path, "unable to create directory")
}

func AssetCopy(path string, cause error) *BuildError {
	return Wrap(cause, KindAssetCopy, path, "unable to copy asset")
}

// Configuration errors

func Config(msg string) *BuildError {
	return New(KindConfig, "", msg)
}
