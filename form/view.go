package form

// View builds the rendering model handed to the Surface.
func (f *Form) View() View {
	view := View{
		Name:             f.def.Name,
		Title:            f.def.Title,
		Submitted:        f.submitted,
		SubmitCount:      f.submitCount,
		SubmitSuccessful: f.submitSuccessful,
		Dirty:            f.IsDirty(),
		Errors:           f.Errors(),
	}

	for _, decl := range f.def.Fields {
		view.Fields = append(view.Fields, f.fieldView(decl.Name, f.fields[decl.Name]))
	}

	for _, gdecl := range f.def.Groups {
		gs := f.groups[gdecl.Name]
		result := gs.result(gdecl.Name, true)
		gv := GroupView{
			Name:    gdecl.Name,
			Message: result.Message,
			Visible: !result.Valid && (f.submitted || gs.dirty),
		}
		for i, item := range gs.items {
			iv := ItemView{ID: item.id, Index: i}
			for _, tmpl := range gdecl.Item {
				iv.Fields = append(iv.Fields, f.fieldView(gs.path(i, tmpl.Name), item.fields[tmpl.Name]))
			}
			gv.Items = append(gv.Items, iv)
		}
		view.Groups = append(view.Groups, gv)
	}

	return view
}

func (f *Form) fieldView(path string, state *fieldState) FieldView {
	result := state.result(path, false)
	return FieldView{
		Name:    path,
		Value:   deepCopy(state.value),
		Message: result.Message,
		Dirty:   state.dirty,
		Touched: state.touched,
		Visible: !result.Valid && (state.dirty || state.touched || f.submitted),
	}
}
