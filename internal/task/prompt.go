package task

import "fmt"

// BuildExtractionPrompt builds the instruction prompt for turning free-form
// user input into a structured task. The response must be a single JSON
// object with title, priority, due_date and body.
func BuildExtractionPrompt(input, hintedDate string) string {
	fecha := hintedDate
	if fecha == "" {
		fecha = "No especificada"
	}

	return fmt.Sprintf(`Eres un asistente personal especializado en ayudar a personas con ADHD a gestionar tareas.
Analiza el siguiente input del usuario y extrae la información clave para crear una tarea bien estructurada.

Input del usuario: "%s"
Fecha sugerida: %s

Tu tarea:
1. Extrae o genera un título claro y conciso (máximo 100 caracteres)
2. Determina la prioridad basándote en palabras clave:
   - urgent: si menciona "urgente", "ya", "ahora", "inmediato"
   - high: si menciona "importante", "pronto", "mañana"
   - medium: si menciona "cuando pueda", "esta semana"
   - low: si menciona "algún día", "no urgente", "eventualmente"
3. Establece una fecha de vencimiento realista:
   - Si el usuario dio una fecha, úsala
   - Si no, infiere basándote en la urgencia:
     * urgent: hoy
     * high: mañana
     * medium: dentro de 3 días
     * low: dentro de una semana
4. Refina el cuerpo/descripción: mejora la redacción y añade detalles útiles

Responde ÚNICAMENTE con un JSON válido en este formato exacto:
{
    "title": "título aquí",
    "priority": "low|medium|high|urgent",
    "due_date": "YYYY-MM-DDTHH:MM:SS",
    "body": "descripción refinada aquí"
}

NO añadas texto adicional, SOLO el JSON.`, input, fecha)
}
