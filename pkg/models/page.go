package models

// PageContent is the editor managed copy and imagery of the signup page
type PageContent struct {
	Heading    string         `json:"heading,omitempty" yaml:"heading"`
	Subheading string         `json:"subheading,omitempty" yaml:"subheading"`
	ButtonText string         `json:"buttonText,omitempty" yaml:"buttonText"`
	Gallery    []GalleryImage `json:"gallery" yaml:"gallery"`
}

// GalleryImage is one background image with its resolved asset URL
type GalleryImage struct {
	Key        string           `json:"key,omitempty" yaml:"key"`
	AssetID    string           `json:"assetId,omitempty" yaml:"assetId"`
	URL        string           `json:"url" yaml:"url"`
	Dimensions *ImageDimensions `json:"dimensions,omitempty" yaml:"dimensions"`
	// LQIP is a low quality base64 placeholder shown while the image loads
	LQIP string `json:"lqip,omitempty" yaml:"lqip"`
}

// ImageDimensions holds the pixel size of an image asset
type ImageDimensions struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// AspectRatio returns width/height, or 0 when unknown
func (d *ImageDimensions) AspectRatio() float64 {
	if d == nil || d.Height == 0 {
		return 0
	}
	return float64(d.Width) / float64(d.Height)
}

// galleryImageDoc mirrors the provider projection of a gallery entry
type galleryImageDoc struct {
	Key   string `json:"_key"`
	Asset *struct {
		ID       string `json:"_id"`
		URL      string `json:"url"`
		Metadata *struct {
			Dimensions *ImageDimensions `json:"dimensions"`
			LQIP       string           `json:"lqip"`
		} `json:"metadata"`
	} `json:"asset"`
}

// PageContentDocument decodes the provider's nested document shape into a
// flat PageContent.
type PageContentDocument struct {
	Heading    string            `json:"heading"`
	Subheading string            `json:"subheading"`
	ButtonText string            `json:"buttonText"`
	Gallery    []galleryImageDoc `json:"gallery"`
}

// Content flattens the document, skipping gallery entries without an asset
func (d *PageContentDocument) Content() *PageContent {
	content := &PageContent{
		Heading:    d.Heading,
		Subheading: d.Subheading,
		ButtonText: d.ButtonText,
		Gallery:    make([]GalleryImage, 0, len(d.Gallery)),
	}
	for _, img := range d.Gallery {
		if img.Asset == nil || img.Asset.URL == "" {
			continue
		}
		out := GalleryImage{
			Key:     img.Key,
			AssetID: img.Asset.ID,
			URL:     img.Asset.URL,
		}
		if img.Asset.Metadata != nil {
			out.Dimensions = img.Asset.Metadata.Dimensions
			out.LQIP = img.Asset.Metadata.LQIP
		}
		content.Gallery = append(content.Gallery, out)
	}
	return content
}
