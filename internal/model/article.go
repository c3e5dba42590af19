package model

const (
	NewsCollection      = "news_datastore"
	DomainsCollection   = "domains"
	UsernamesCollection = "usernames"
	ImagesCollection    = "images"
	ChunksCollection    = "chunks"

	UnknownDomain = "unknown"
)

// Article is a read-only view of an ingested news document.
type Article struct {
	ID                string
	Title             string
	Description       string
	Domain            string
	Source            string
	SourceURL         string
	Companies         []string
	SentimentNumeric  float64
	SentimentResult   map[string]any
	SentimentSublabel string
	Timestamp         int64
}

func NewArticle(id string, data map[string]any) Article {
	return Article{
		ID:                id,
		Title:             stringField(data, "title"),
		Description:       stringField(data, "description"),
		Domain:            stringField(data, "domain"),
		Source:            stringField(data, "source"),
		SourceURL:         stringField(data, "source_url"),
		Companies:         stringsField(data, "companies"),
		SentimentNumeric:  floatField(data, "sentiment_numeric"),
		SentimentResult:   mapField(data, "sentiment_result"),
		SentimentSublabel: stringField(data, "sentiment_sublabel"),
		Timestamp:         int64Field(data, "timestamp"),
	}
}

type Domain struct {
	ID   string
	Name string
}

func NewDomain(id string, data map[string]any) Domain {
	name := stringField(data, "name")
	if name == "" {
		name = id
	}
	return Domain{ID: id, Name: name}
}

type UsernameRecord struct {
	Username      string
	Email         string
	UID           string
	ProfilePicUID string
}

func NewUsernameRecord(username string, data map[string]any) UsernameRecord {
	return UsernameRecord{
		Username:      username,
		Email:         stringField(data, "email"),
		UID:           stringField(data, "uid"),
		ProfilePicUID: stringField(data, "profile_pic_uid"),
	}
}

type Image struct {
	ID          string
	Name        string
	ContentType string
	TotalChunks int
	Data        []byte
}
