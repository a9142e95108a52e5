package assets

import "embed"

//go:embed edx-dl.example.yaml
var Embedded embed.FS

// Nom de l'asset de config par défaut (chemin DANS Embedded)
const DefaultConfigAsset = "edx-dl.example.yaml"
