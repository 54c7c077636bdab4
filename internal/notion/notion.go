package notion

//go:generate mockgen -source=notionapi_interfaces.go -destination=mock_notion/mock_notionapi.go -package=mock_notion

// NotionClient exposes the notionapi services the client depends on
type NotionClient interface {
	Page() PageService
	Block() BlockService
	Database() DatabaseService
}
