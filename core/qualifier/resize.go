package qualifier

// expression builds a qualifier whose value is a normalized expression
func expression(kind Kind, v interface{}) Qualifier {
	return Qualifier{Key: KeyFor(kind), Value: NewValue(NormalizeExpression(v))}
}

// Crop sets the crop mode (fill, limit, crop, scale, ...)
func Crop(mode string) Qualifier {
	return New(KindCrop, mode)
}

// Width accepts a number, "auto" variants or an expression
func Width(v interface{}) Qualifier {
	return expression(KindWidth, v)
}

// Height accepts a number or an expression
func Height(v interface{}) Qualifier {
	return expression(KindHeight, v)
}

func AspectRatio(v interface{}) Qualifier {
	return expression(KindAspectRatio, v)
}

// Gravity accepts a compass direction, a detector name or auto variants
func Gravity(v interface{}) Qualifier {
	return New(KindGravity, v)
}

func Zoom(v interface{}) Qualifier {
	return expression(KindZoom, v)
}

func X(v interface{}) Qualifier {
	return expression(KindX, v)
}

func Y(v interface{}) Qualifier {
	return expression(KindY, v)
}

// DPR sets the device pixel ratio; floats keep their .0 suffix
func DPR(v interface{}) Qualifier {
	return expression(KindDPR, v)
}
