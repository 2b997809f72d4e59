// Package content holds the landing page copy and the model catalogue.
package content

import (
	"fmt"
	"strings"
)

// Section identifiers, in presentation order.
const (
	SectionHero     = "hero"
	SectionServices = "services"
	SectionModels   = "realisations"
	SectionWhyUs    = "pourquoi"
	SectionFooter   = "footer"
)

var sectionSequence = []string{
	SectionHero,
	SectionServices,
	SectionModels,
	SectionWhyUs,
	SectionFooter,
}

const (
	Brand     = "WebModels"
	Studio    = "Anthracite Applications"
	Price     = "200€"
	PriceLine = "Tous nos sites sont disponibles pour seulement 200€, installation et formation incluses."
)

// Sections returns the ordered section ids. Its length is the navigator's section count.
func Sections() []string {
	return append([]string(nil), sectionSequence...)
}

// SectionTitle is the heading shown for a section id.
func SectionTitle(id string) string {
	switch id {
	case SectionHero:
		return "Votre site web"
	case SectionServices:
		return "Nos Services"
	case SectionModels:
		return "Nos Réalisations"
	case SectionWhyUs:
		return "Pourquoi Nous Choisir"
	case SectionFooter:
		return Brand
	default:
		return id
	}
}

// HeroCopy is the first section's text.
type HeroCopy struct {
	Title    string
	Taglines []string
	Price    string
	CTA      string
}

func Hero() HeroCopy {
	return HeroCopy{
		Title: "Votre site web",
		Taglines: []string{
			"Remis au goût du jour",
			"Avec un design élégant",
			"Pour une image professionnelle",
			"A prix abordable",
		},
		Price: Price + " tout inclus",
		CTA:   "Découvrir",
	}
}

// Tagline returns the rotating tagline for tick, wrapping around the list.
func (h HeroCopy) Tagline(tick int) string {
	if len(h.Taglines) == 0 {
		return ""
	}
	if tick < 0 {
		tick = -tick
	}
	return h.Taglines[tick%len(h.Taglines)]
}

// Service is one offer of the services section.
type Service struct {
	ID          string
	Icon        string
	Title       string
	Description string
	Features    []string
}

func Services() []Service {
	return []Service{
		{
			ID:          "site-web",
			Icon:        "🌐",
			Title:       "Site Web et vitrine",
			Description: "Des sites web modernes, réactifs et optimisés pour tous les appareils",
			Features:    []string{"Design responsive", "Interface moderne", "Performance optimisée", "SEO amélioré"},
		},
		{
			ID:          "application-web",
			Icon:        "💻",
			Title:       "Application Web",
			Description: "Des applications web complètes avec fonctionnalités avancées et expérience utilisateur fluide",
			Features:    []string{"Expérience utilisateur fluide", "Animations élégantes", "Fonctionnalités avancées", "Haute performance"},
		},
		{
			ID:          "e-commerce",
			Icon:        "🛒",
			Title:       "E-Commerce",
			Description: "Solutions e-commerce personnalisées avec gestion de produits et paiements sécurisés",
			Features:    []string{"Catalogue de produits", "Panier d'achat sécurisé", "Gestion des commandes", "Paiement en ligne"},
		},
	}
}

const ServicesIntro = "Des solutions digitales modernes et sur mesure pour votre entreprise"

// Model is a ready-made site template with a live demo.
type Model struct {
	ID          string
	Title       string
	Description string
	Features    []string
	DemoURL     string
}

var models = []Model{
	{
		ID:          "studio-enregistrement",
		Title:       "Studio d'Enregistrement",
		Description: "Site web professionnel pour studio d'enregistrement avec réservation en ligne et présentation des équipements.",
		Features:    []string{"Réservation en ligne", "Galerie des équipements", "Tarifs personnalisables", "Témoignages clients"},
		DemoURL:     "https://projetk.vercel.app/",
	},
	{
		ID:          "studio-tatouage",
		Title:       "Studio de Tatouage",
		Description: "Vitrine élégante pour studio de tatouage avec portfolio des artistes et prise de rendez-vous.",
		Features:    []string{"Portfolio des artistes", "Galerie de réalisations", "Système de rendez-vous", "Blog intégré"},
		DemoURL:     "https://devexp.vercel.app/",
	},
	{
		ID:          "vente-artisanale",
		Title:       "Vente Artisanale",
		Description: "Boutique en ligne pour artisans avec présentation des produits et système de commande simplifié.",
		Features:    []string{"Catalogue de produits", "Panier d'achat", "Paiement sécurisé", "Gestion des stocks"},
		DemoURL:     "https://projetk.vercel.app/",
	},
	{
		ID:          "boulangerie",
		Title:       "Boulangerie",
		Description: "Site vitrine pour boulangerie avec présentation des produits et informations pratiques.",
		Features:    []string{"Catalogue de produits", "Horaires d'ouverture", "Commande en ligne", "Actualités et promotions"},
		DemoURL:     "https://boulangerie-sand.vercel.app/",
	},
}

// Models returns the showcase catalogue.
func Models() []Model {
	out := make([]Model, len(models))
	for i, m := range models {
		m.Features = append([]string(nil), m.Features...)
		out[i] = m
	}
	return out
}

// ModelByID looks a model up by id.
func ModelByID(id string) (Model, bool) {
	id = strings.TrimSpace(id)
	for _, m := range Models() {
		if m.ID == id {
			return m, true
		}
	}
	return Model{}, false
}

// CustomModelID is the contact form's "other" choice.
const CustomModelID = "autre"

// Choice is one option of the contact form's model selector.
type Choice struct {
	ID   string
	Name string
}

// ContactModels lists the selectable models of the contact form.
func ContactModels() []Choice {
	choices := make([]Choice, 0, len(models)+1)
	for _, m := range models {
		choices = append(choices, Choice{ID: m.ID, Name: m.Title})
	}
	return append(choices, Choice{ID: CustomModelID, Name: "Autre / Personnalisé"})
}

// ChoiceName returns the display name for a model id, or the id itself.
func ChoiceName(id string) string {
	for _, c := range ContactModels() {
		if c.ID == id {
			return c.Name
		}
	}
	return id
}

// Feature is one argument of the "why us" section.
type Feature struct {
	Icon        string
	Title       string
	Description string
}

func Features() []Feature {
	return []Feature{
		{Icon: "✨", Title: "Design Professionnel", Description: "Des designs modernes et élégants inspirés des dernières tendances web."},
		{Icon: "🚀", Title: "Installation Incluse", Description: "Nous nous occupons de tout : domaine, hébergement et mise en ligne."},
		{Icon: "📚", Title: "Formation Complète", Description: "Apprenez à gérer votre site facilement grâce à notre formation personnalisée."},
		{Icon: "💰", Title: "Prix Fixe", Description: "Un tarif unique de 200€, sans frais cachés ni surprises."},
		{Icon: "🛠️", Title: "Support Réactif", Description: "Une assistance technique disponible pour répondre à vos questions."},
		{Icon: "🎨", Title: "Personnalisation", Description: "Adaptez votre site à votre image de marque et à vos besoins spécifiques."},
	}
}

// ContactInfo is the studio's public contact card.
type ContactInfo struct {
	Email   string
	Phone   string
	City    string
	Socials []string
}

func Contact() ContactInfo {
	return ContactInfo{
		Email:   "contact@webmodels.fr",
		Phone:   "+33 6 00 00 00 00",
		City:    "Paris, France",
		Socials: []string{"facebook", "twitter", "instagram", "linkedin"},
	}
}

// Promises are the bullet points of the contact page's side card.
func Promises() []string {
	return []string{
		"Prix fixe de " + Price + ", tout inclus",
		"Installation et configuration",
		"Formation personnalisée",
		"Support technique",
	}
}

// Copyright renders the footer line for year.
func Copyright(year int) string {
	return fmt.Sprintf("© %d %s", year, Brand)
}
