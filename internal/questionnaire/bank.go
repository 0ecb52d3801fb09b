// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package questionnaire

import (
	"fmt"

	"github.com/tomtom215/trackmatch/internal/recommend"
	"github.com/tomtom215/trackmatch/internal/validation"
)

// Item is a single statement answered on the 1..5 rating scale.
type Item struct {
	Key       string              `json:"key"`
	Dimension recommend.Dimension `json:"dimension"`
	Question  int                 `json:"question"`
	Text      string              `json:"text"`
}

// Section groups the items of one interest dimension.
type Section struct {
	Dimension recommend.Dimension `json:"dimension"`
	Column    string              `json:"column"`
	Label     string              `json:"label"`
	Items     []Item              `json:"items"`
}

// statements holds the item texts in dimension order.
var statements = [recommend.Dimensions][validation.QuestionsPerDimension]string{
	{
		"Disfruto resolviendo problemas matemáticos.",
		"Me atraen el cálculo y el álgebra.",
		"Me siento cómodo/a con fórmulas y números.",
	},
	{
		"Me gusta la experimentación física.",
		"Me interesan los fenómenos del mundo real (fuerzas, energía...).",
		"Me divierte construir y probar dispositivos.",
	},
	{
		"Me atraen la biología y las ciencias de la salud.",
		"Me gustaría trabajar en ámbitos sanitarios o investigación biomédica.",
		"Sigo contenidos de medicina, fisiología o genética.",
	},
	{
		"Me resulta interesante el laboratorio químico.",
		"Disfruto analizando sustancias y reacciones.",
		"Soy detallista con protocolos y seguridad.",
	},
	{
		"Me gusta programar o automatizar tareas.",
		"Me atraen la IA, los datos o el desarrollo de software.",
		"Disfruto aprendiendo nuevos lenguajes/tecnologías.",
	},
	{
		"Me gusta diseñar y crear cosas nuevas.",
		"Me atraen el diseño gráfico, UX o producto.",
		"Disfruto con herramientas creativas.",
	},
	{
		"Se me da bien comunicar ideas por escrito.",
		"Disfruto hablando en público o contando historias.",
		"Me atrae el periodismo, la publicidad o los medios.",
	},
	{
		"Me gustan los idiomas y las humanidades.",
		"Me interesa la historia, filosofía o literatura.",
		"Disfruto analizando textos y contextos culturales.",
	},
	{
		"Me atraen los negocios y la economía.",
		"Disfruto analizando mercados y tomando decisiones.",
		"Me interesan finanzas, marketing o emprendimiento.",
	},
	{
		"Me interesa el derecho y la normativa.",
		"Me gusta argumentar y estructurar casos.",
		"Soy riguroso/a con procesos y detalle legal.",
	},
	{
		"Me interesan la psicología y el comportamiento humano.",
		"Disfruto ayudando a las personas.",
		"Me gusta investigar aspectos sociales.",
	},
	{
		"Me atraen el arte y la expresión.",
		"Disfruto con música, cine, teatro o artes visuales.",
		"Me motiva crear y explorar lenguajes artísticos.",
	},
}

// Key returns the answer key of question q (1-based) for dimension d.
func Key(d recommend.Dimension, q int) string {
	return fmt.Sprintf("%s_q%d", d.Column(), q)
}

// Bank returns all items in dimension order, then question order.
func Bank() []Item {
	items := make([]Item, 0, recommend.Dimensions*validation.QuestionsPerDimension)
	for _, d := range recommend.AllDimensions() {
		items = append(items, sectionItems(d)...)
	}
	return items
}

// Sections returns the items grouped by dimension.
func Sections() []Section {
	dims := recommend.AllDimensions()
	out := make([]Section, len(dims))
	for i, d := range dims {
		out[i] = Section{
			Dimension: d,
			Column:    d.Column(),
			Label:     d.Label(),
			Items:     sectionItems(d),
		}
	}
	return out
}

func sectionItems(d recommend.Dimension) []Item {
	items := make([]Item, validation.QuestionsPerDimension)
	for j := range items {
		items[j] = Item{
			Key:       Key(d, j+1),
			Dimension: d,
			Question:  j + 1,
			Text:      statements[d][j],
		}
	}
	return items
}
