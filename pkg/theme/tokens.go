package theme

// Tree is a nested token map. Leaves are strings or numbers; interior nodes
// are Trees.
type Tree = map[string]any

func lightColors() Tree {
	return Tree{
		"primary":   "#264653",
		"secondary": "#3d3d3d",
		"disable":   "#6d6d6d",
		"tertiary": Tree{
			"tertiary1": "#f4a261",
			"tertiary2": "#e76f51",
			"tertiary3": "#e9c46a",
		},
		"neutral": Tree{
			"high":    "#4f4f4f",
			"higher":  "#3d3d3d",
			"highest": "#262626",
			"low":     "#b0b0b0",
			"lower":   "#e7e7e7",
			"lowest":  "#f6f6f6",
			"medium":  "#6d6d6d",
		},
		"surface": Tree{
			"high":     "#6d6d6d",
			"higher":   "#4f4f4f",
			"highest":  "#3d3d3d",
			"low":      "#e7e7e7",
			"lower":    "#f6f6f6",
			"lowest":   "#ffffff",
			"medium":   "#b0b0b0",
			"opposite": "#262626",
		},
		"text": Tree{
			"disable":   "#b0b0b0",
			"opposite":  "#ffffff",
			"primary":   "#262626",
			"secondary": "#3d3d3d",
			"tertiary":  "#6d6d6d",
		},
	}
}

func darkColors() Tree {
	return Tree{
		"primary":   "#c8ff2f",
		"secondary": "#000000",
		"disable":   "#6d6d6d",
		"tertiary": Tree{
			"tertiary1": "#f4a261",
			"tertiary2": "#e76f51",
			"tertiary3": "#e9c46a",
		},
		"neutral": Tree{
			"high":    "#6d6d6d",
			"higher":  "#b0b0b0",
			"highest": "#f6f6f6",
			"low":     "#4f4f4f",
			"lower":   "#3d3d3d",
			"lowest":  "#262626",
			"medium":  "#6d6d6d",
		},
		"surface": Tree{
			"high":     "#575757",
			"higher":   "#888888",
			"highest":  "#e7e7e7",
			"low":      "#3d3d3d",
			"lower":    "#262626",
			"lowest":   "#000000",
			"medium":   "#454545",
			"opposite": "#ffffff",
		},
		"text": Tree{
			"disable":   "#6d6d6d",
			"opposite":  "#262626",
			"primary":   "#ffffff",
			"secondary": "#d1d1d1",
			"tertiary":  "#b0b0b0",
		},
	}
}

func textStyle(size float64, weight string, lineHeight float64, family string) Tree {
	return Tree{
		"fontSize":   size,
		"fontWeight": weight,
		"lineHeight": lineHeight,
		"fontFamily": family,
	}
}

func defaultTypography() Tree {
	return Tree{
		"fontFamily": Tree{
			"tagline": "Inter",
			"text":    "Inter",
			"title":   "Inter",
		},
		"fontSize": Tree{
			"xs":  12.0,
			"sm":  14.0,
			"md":  16.0,
			"lg":  20.0,
			"xl":  24.0,
			"2xl": 32.0,
			"3xl": 40.0,
			"4xl": 72.0,
		},
		"fontWeight": Tree{
			"regular":   "400",
			"medium":    "500",
			"semibold":  "600",
			"bold":      "700",
			"extrabold": "800",
		},
		"lineHeight": Tree{
			"tight":   1.25,
			"normal":  1.3,
			"relaxed": 1.4,
		},
		"textStyles": Tree{
			"heading1":   textStyle(32, "600", 1.25, "title"),
			"heading2":   textStyle(24, "600", 1.3, "title"),
			"heading3":   textStyle(18, "500", 1.3, "text"),
			"body":       textStyle(16, "400", 1.3, "text"),
			"bodyMedium": textStyle(16, "500", 1.3, "text"),
			"label":      textStyle(14, "500", 1.3, "text"),
			"caption":    textStyle(12, "400", 1.3, "text"),
			"button":     textStyle(16, "500", 1.5, "text"),
		},
	}
}

// Defaults returns a fresh copy of the built-in theme for scheme.
func Defaults(scheme Scheme) Theme {
	colors := lightColors()
	if scheme == Dark {
		colors = darkColors()
	}
	return Theme{Colors: colors, Typography: defaultTypography()}
}
