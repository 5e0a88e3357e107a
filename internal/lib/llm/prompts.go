package llm

import (
	"fmt"
	"strings"
)

// Промпты для Gemini. Контракт ответа — строго JSON с испанскими ключами,
// его же ожидают domain.SearchFilter и GenerateListingResponse.

const extractionPromptTemplate = `
Eres un experto analizador de consultas inmobiliarias en español. Tu tarea es extraer información estructurada de una consulta en lenguaje natural.

CONSULTA DEL USUARIO: "%s"

Analiza la consulta y extrae ÚNICAMENTE los siguientes parámetros si están presentes:

1. "tipo_propiedad": tipo de inmueble buscado. Valores válidos:
   - Apartamento (también: departamento, dpto, apto, piso, flat)
   - Casa (también: vivienda, residencia, hogar)
   - Oficina (también: despacho, comercio)
   - Local (también: tienda, negocio, retail)
   - Terreno (también: lote, solar, parcela, tierra)
   - Estudio (también: mini apartamento, monoambiente, T1)
   - null si no está claro

2. "amenities": array de comodidades buscadas (de cualquier tipo mencionado):
   Ejemplos: balcón, jardín, piscina, estacionamiento, ascensor, aire_acondicionado, wifi, cocina_integral, terraza, gym, cochera, vigilancia, parque, vista, desayunador, lavadero

3. "precio_max": número en USD (null si no está especificado)
4. "precio_min": número en USD (null si no está especificado)
5. "superficie_min": número en m² (null si no está)
6. "superficie_max": número en m² (null si no está)
7. "habitaciones_min": número (null si no está)
8. "banos_min": número (null si no está)
9. "tipo_transaccion": "Venta" o "Alquiler" (inferir del contexto, null si ambiguo)
10. "ubicacion_palabra_clave": palabras clave de ubicación específicas (ej: "universidad", "centro", "zona alta", "cerca escuela") o null

INSTRUCCIONES CRÍTICAS:
1. Sé inteligente con abreviaturas: m2/m²=metros cuadrados, dorm/hab/cuarto=habitación, ba/wc=baño
2. Si el usuario menciona moneda, interpreta realista (USD 400 = 400, MXN 400000 ≈ 24000 USD)
3. Si dice "terreno", "lote", "solar" → tipo_propiedad = "Terreno"
4. Si dice "apartamento", "departamento", "dpto", "piso" → tipo_propiedad = "Apartamento"
5. RETORNA SOLO JSON válido, sin explicaciones adicionales

EJEMPLO 1:
Entrada: "departamento con balcón cerca de la universidad, menos de 400 USD"
Salida: {"tipo_propiedad": "Apartamento", "amenities": ["balcón"], "precio_max": 400, "precio_min": null, "superficie_min": null, "superficie_max": null, "habitaciones_min": null, "banos_min": null, "tipo_transaccion": "Alquiler", "ubicacion_palabra_clave": "universidad"}

EJEMPLO 2:
Entrada: "busco un terreno para construir, 5000 m2 minimo"
Salida: {"tipo_propiedad": "Terreno", "amenities": [], "precio_max": null, "precio_min": null, "superficie_min": 5000, "superficie_max": null, "habitaciones_min": null, "banos_min": null, "tipo_transaccion": null, "ubicacion_palabra_clave": null}

RETORNA SOLO EL JSON:
`

func buildExtractionPrompt(query string) string {
	return fmt.Sprintf(extractionPromptTemplate, query)
}

func buildListingPrompt(req GenerateListingRequest) string {
	var sb strings.Builder
	sb.WriteString("Actúa como un experto en marketing inmobiliario y copywriting.\n")
	sb.WriteString("Tu tarea es crear un anuncio de venta atractivo, profesional y VISUALMENTE ESTRUCTURADO para una propiedad.\n\n")
	sb.WriteString("Utiliza la siguiente información proporcionada por el usuario:\n")
	sb.WriteString(fmt.Sprintf("- Descripción base: %q\n", req.BaseText))
	sb.WriteString(fmt.Sprintf("- Ubicación (coordenadas): Latitud %f, Longitud %f\n", req.Latitude, req.Longitude))

	sb.WriteString(`
IMPORTANTE - FORMATO DE LA DESCRIPCIÓN:
La descripción debe estar en formato HTML con la siguiente estructura:

1. Un párrafo inicial breve y emocional (2-3 líneas) que capte la atención
2. Secciones organizadas con <h3> para subtítulos y contenido estructurado:
   - Usar <strong> para destacar datos importantes
   - Usar <ul> y <li> para listas de características
   - Usar <p> para párrafos separados

El título debe ser conciso pero impactante, máximo 10 palabras.
Incluir en el título: característica única + zona + dato relevante.

Devuelve el resultado en formato JSON con la siguiente estructura:
{
  "titulo_generado": "Título conciso y atractivo",
  "descripcion_generada": "Descripción completa en HTML con estructura visual"
}`)

	return sb.String()
}
