package content

type PublicationType string

const (
	Conference PublicationType = "Conference"
	Journal    PublicationType = "Journal"
	Workshop   PublicationType = "Workshop"
	Preprint   PublicationType = "Preprint"
)

// PublicationTypes lists the accepted publication types in display order.
var PublicationTypes = []PublicationType{Conference, Journal, Workshop, Preprint}

func (t PublicationType) Valid() bool {
	for _, v := range PublicationTypes {
		if v == t {
			return true
		}
	}
	return false
}

type NewsCategory string

const (
	CategoryPublication   NewsCategory = "Publication"
	CategoryService       NewsCategory = "Service"
	CategoryConference    NewsCategory = "Conference"
	CategoryCollaboration NewsCategory = "Collaboration"
	CategoryAward         NewsCategory = "Award"
	CategoryGeneral       NewsCategory = "General"
)

var NewsCategories = []NewsCategory{
	CategoryPublication,
	CategoryService,
	CategoryConference,
	CategoryCollaboration,
	CategoryAward,
	CategoryGeneral,
}

func (c NewsCategory) Valid() bool {
	for _, v := range NewsCategories {
		if v == c {
			return true
		}
	}
	return false
}
