package contact

// Tables are indexed by Locale then Subject; array literals keyed by the
// enum constants keep every cell addressable, and tests assert none is empty.

var subjectLabels = [localeCount][subjectCount]string{
	LocaleFR: {
		SubjectVTC:         "Besoin d'un VTC à Marseille",
		SubjectBooking:     "Demande de réservation",
		SubjectInformation: "Renseignements généraux",
		SubjectReclamation: "Réclamation",
		SubjectOther:       "Autre",
	},
	LocaleEN: {
		SubjectVTC:         "Need a VTC in Marseille",
		SubjectBooking:     "Booking Request",
		SubjectInformation: "General Information",
		SubjectReclamation: "Complaint / Reclamation",
		SubjectOther:       "Other",
	},
}

// Label returns the human-readable subject in the given locale.
func (s Subject) Label(l Locale) string {
	if s >= subjectCount || l >= localeCount {
		return s.String()
	}
	return subjectLabels[l][s]
}

// Captions are the fixed texts used to compose both emails.
type Captions struct {
	NotificationSubject string
	Title               string
	Name                string
	Email               string
	Phone               string
	Subject             string
	Position            string
	Destination         string
	Message             string

	ConfirmationSubject     string
	ConfirmationTitle       string
	ConfirmationGreeting    string
	ConfirmationBody        string
	ConfirmationVTCBody     string
	ConfirmationYourMessage string
	ConfirmationRegards     string
}

var captions = [localeCount]Captions{
	LocaleFR: {
		NotificationSubject: "Nouvelle soumission du formulaire de contact",
		Title:               "Nouvelle soumission du formulaire de contact",
		Name:                "Nom",
		Email:               "Email",
		Phone:               "Téléphone",
		Subject:             "Sujet",
		Position:            "Lieu de prise en charge",
		Destination:         "Destination",
		Message:             "Message",

		ConfirmationSubject:     "Confirmation : Nous avons reçu votre message",
		ConfirmationTitle:       "Merci de nous avoir contactés !",
		ConfirmationGreeting:    "Cher/Chère",
		ConfirmationBody:        "Nous avons bien reçu votre message et nous vous répondrons dans les plus brefs délais.",
		ConfirmationVTCBody:     "Nous avons bien reçu votre demande de VTC. Notre équipe vous enverra une estimation du coût dans les plus brefs délais.",
		ConfirmationYourMessage: "Votre message :",
		ConfirmationRegards:     "Cordialement",
	},
	LocaleEN: {
		NotificationSubject: "New Contact Form Submission",
		Title:               "New Contact Form Submission",
		Name:                "Name",
		Email:               "Email",
		Phone:               "Phone",
		Subject:             "Subject",
		Position:            "Pickup Location",
		Destination:         "Destination",
		Message:             "Message",

		ConfirmationSubject:     "Confirmation: We received your message",
		ConfirmationTitle:       "Thank you for contacting us!",
		ConfirmationGreeting:    "Dear",
		ConfirmationBody:        "We have received your message and will get back to you as soon as possible.",
		ConfirmationVTCBody:     "We have received your VTC request. Our team will send you a cost estimation as soon as possible.",
		ConfirmationYourMessage: "Your message:",
		ConfirmationRegards:     "Best regards",
	},
}

// Captions returns the email captions for the locale.
func (l Locale) Captions() Captions {
	if l >= localeCount {
		l = LocaleFR
	}
	return captions[l]
}

type validationTexts struct {
	MissingVtcFields string
	InvalidSubject   string
	MessageTooLong   string
}

var validationMessages = [localeCount]validationTexts{
	LocaleFR: {
		MissingVtcFields: "Le lieu de prise en charge et la destination sont requis pour les demandes VTC",
		InvalidSubject:   "Le sujet sélectionné n'est pas valide",
		MessageTooLong:   "Le message ne doit pas dépasser %d caractères",
	},
	LocaleEN: {
		MissingVtcFields: "Position and destination are required for VTC requests",
		InvalidSubject:   "The selected subject is not valid",
		MessageTooLong:   "The message must not exceed %d characters",
	},
}
