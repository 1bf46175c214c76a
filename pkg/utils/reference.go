package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateReference gera uma referência curta para documentos enviados ao SIIGO
func GenerateReference() (string, error) {
	return gonanoid.Generate(characters, 8)
}
