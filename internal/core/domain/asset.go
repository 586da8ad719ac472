package domain

// AssetUploadAuth is the signed parameter set a browser needs to upload one
// file directly to the asset host.
type AssetUploadAuth struct {
	Token       string `json:"token"`
	Expire      int64  `json:"expire"`
	Signature   string `json:"signature"`
	PublicKey   string `json:"publicKey"`
	URLEndpoint string `json:"urlEndpoint"`
}
