package gui

import "fyne.io/fyne/v2"

var iconSVG = []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 64 64">
<rect width="64" height="64" rx="12" fill="#2b6cb0"/>
<path d="M14 40 q0 -22 18 -22 q18 0 18 22" fill="none" stroke="#fff" stroke-width="5"/>
<rect x="10" y="38" width="10" height="14" rx="3" fill="#fff"/>
<rect x="44" y="38" width="10" height="14" rx="3" fill="#fff"/>
<rect x="24" y="46" width="16" height="4" fill="#fbd38d"/>
</svg>`)

// GetAppIcon returns the application icon as a Fyne resource
func GetAppIcon() fyne.Resource {
	return &fyne.StaticResource{
		StaticName:    "listenfill.svg",
		StaticContent: iconSVG,
	}
}
