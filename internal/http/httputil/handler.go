package httputil

import "github.com/gin-gonic/gin"

type IHttpHandler interface {
	Root() string
	SetRoutes(pub *gin.RouterGroup, private *gin.RouterGroup, admin *gin.RouterGroup)
}

// Mount registers every handler under its root in the public, private and
// admin groups.
func Mount(handlers []IHttpHandler, pub, private, admin *gin.RouterGroup) {
	for _, h := range handlers {
		h.SetRoutes(pub.Group(h.Root()), private.Group(h.Root()), admin.Group(h.Root()))
	}
}
